package qlog

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codex/config"
	"codex/internal/log"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestLogAppendsDailyFile(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(config.QLogConfig{Dir: dir}, log.NewNop())
	r.now = fixedClock

	r.Log("Tell me about leadership")
	r.Log("What drives you?")

	data, err := os.ReadFile(filepath.Join(dir, "2025-03-14.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if lines[0] != "[09:26:53] Tell me about leadership" {
		t.Errorf("unexpected first line %q", lines[0])
	}
}

func TestLogSubmitsForm(t *testing.T) {
	var gotTimestamp, gotQuestion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			t.Error(err)
		}
		gotTimestamp = req.PostFormValue("entry.1")
		gotQuestion = req.PostFormValue("entry.2")
	}))
	defer srv.Close()

	r := NewRecorder(config.QLogConfig{Dir: t.TempDir()}, log.NewNop())
	r.now = fixedClock
	r.formURL = srv.URL
	r.timestampField = "entry.1"
	r.questionField = "entry.2"

	r.Log("What are your strengths?")

	if gotQuestion != "What are your strengths?" {
		t.Errorf("question field = %q", gotQuestion)
	}
	if gotTimestamp != "2025-03-14 09:26:53" {
		t.Errorf("timestamp field = %q", gotTimestamp)
	}
}

func TestLogSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRecorder(config.QLogConfig{Dir: filepath.Join(string(rune(0)), "impossible")}, log.NewNop())
	r.formURL = srv.URL
	r.timestampField = "entry.1"
	r.questionField = "entry.2"

	// Both the file write and the form submission fail; Log must not
	// panic or surface anything.
	r.Log("still fine")
}
