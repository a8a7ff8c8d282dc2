// Package qlog records incoming questions on a best-effort side
// channel: a daily append-only text file, plus an optional HTTP form
// submission for hosted deployments. Failures here are logged and
// swallowed; the answer path never depends on this package.
package qlog

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codex/config"
	"codex/internal/log"
)

const formTimeout = 5 * time.Second

type Recorder struct {
	dir            string
	formURL        string
	timestampField string
	questionField  string
	client         *http.Client
	logger         log.Logger

	now func() time.Time
}

func NewRecorder(cfg config.QLogConfig, logger log.Logger) *Recorder {
	return &Recorder{
		dir:            cfg.Dir,
		formURL:        os.Getenv(cfg.FormURLEnv),
		timestampField: os.Getenv(cfg.FormTimestampEnv),
		questionField:  os.Getenv(cfg.FormQuestionEnv),
		client:         &http.Client{Timeout: formTimeout},
		logger:         logger,
		now:            time.Now,
	}
}

// Log implements port.QuestionLogger. It never returns an error and
// never panics past this boundary.
func (r *Recorder) Log(question string) {
	if err := r.appendLocal(question); err != nil {
		r.logger.Error("question log write failed", "err", err)
	}
	if r.formConfigured() {
		if err := r.submitForm(question); err != nil {
			r.logger.Warn("question form submission failed", "err", err)
		}
	}
}

func (r *Recorder) appendLocal(question string) error {
	if r.dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return err
	}

	now := r.now()
	path := filepath.Join(r.dir, now.Format("2006-01-02")+".txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "[%s] %s\n", now.Format("15:04:05"), question)
	return err
}

func (r *Recorder) formConfigured() bool {
	return r.formURL != "" && r.timestampField != "" && r.questionField != ""
}

func (r *Recorder) submitForm(question string) error {
	form := url.Values{}
	form.Set(r.timestampField, r.now().Format("2006-01-02 15:04:05"))
	form.Set(r.questionField, question)

	resp, err := r.client.Post(r.formURL, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("form endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
