package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleProfile = `
name: Alex Rivers
title: Backend Engineer
summary: Builds data plumbing and mentors juniors.
voice:
  tone: warm, direct
  sentence_length: short
  forbid: [synergy, leverage]
  signature_phrases: ["ship it", "measure first"]
values: [curiosity, honesty]
strengths: [debugging, mentoring]
growth_areas: [public speaking]
culture: [remote-first]
debugging_style: binary search over assumptions
`

func TestLoadAndRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(sampleProfile), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if p.Name != "Alex Rivers" {
		t.Errorf("expected name Alex Rivers, got %q", p.Name)
	}
	if len(p.Voice.Forbid) != 2 {
		t.Errorf("expected 2 forbidden terms, got %d", len(p.Voice.Forbid))
	}

	block := p.PromptBlock()
	for _, want := range []string{
		"Name: Alex Rivers",
		"Title: Backend Engineer",
		"forbid=synergy, leverage",
		"signatures=ship it; measure first",
		"Debugging Style: binary search over assumptions",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("prompt block missing %q:\n%s", want, block)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
}
