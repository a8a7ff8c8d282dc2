// Package persona loads the subject's profile and renders it as the
// flat prompt block injected into every request.
package persona

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Voice describes how the subject speaks.
type Voice struct {
	Tone             string   `yaml:"tone"`
	SentenceLength   string   `yaml:"sentence_length"`
	Forbid           []string `yaml:"forbid"`
	SignaturePhrases []string `yaml:"signature_phrases"`
}

// Profile is the subject's persona, loaded from static configuration
// and immutable within a session.
type Profile struct {
	Name           string   `yaml:"name"`
	Title          string   `yaml:"title"`
	Summary        string   `yaml:"summary"`
	Voice          Voice    `yaml:"voice"`
	Values         []string `yaml:"values"`
	Strengths      []string `yaml:"strengths"`
	GrowthAreas    []string `yaml:"growth_areas"`
	Culture        []string `yaml:"culture"`
	DebuggingStyle string   `yaml:"debugging_style"`
}

// Load reads a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// PromptBlock renders the profile as flat prompt text.
func (p *Profile) PromptBlock() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "Title: %s\n", p.Title)
	fmt.Fprintf(&sb, "Summary: %s\n", p.Summary)
	fmt.Fprintf(&sb, "Voice: tone=%s; sentence_length=%s; forbid=%s; signatures=%s\n",
		p.Voice.Tone, p.Voice.SentenceLength,
		strings.Join(p.Voice.Forbid, ", "), strings.Join(p.Voice.SignaturePhrases, "; "))
	fmt.Fprintf(&sb, "Values: %s\n", strings.Join(p.Values, ", "))
	fmt.Fprintf(&sb, "Strengths: %s\n", strings.Join(p.Strengths, ", "))
	fmt.Fprintf(&sb, "Growth Areas: %s\n", strings.Join(p.GrowthAreas, ", "))
	fmt.Fprintf(&sb, "Culture: %s\n", strings.Join(p.Culture, ", "))
	fmt.Fprintf(&sb, "Debugging Style: %s\n", p.DebuggingStyle)
	return sb.String()
}
