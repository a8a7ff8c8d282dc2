package usecase

import (
	"fmt"
	"path/filepath"
	"strings"

	"codex/config"
	"codex/internal/domain"
)

// weakContextHint is appended when retrieval confidence is low: the
// model is told to state what is missing rather than fabricate.
const weakContextHint = "Context appears thin. If you cannot answer strictly from CONTEXT and PROFILE, " +
	"say what's missing and suggest adding a relevant doc (e.g., project README with metrics, " +
	"performance review, or case study)."

// Composer assembles the ordered prompt segments for the generation
// collaborator and applies the weak-context guardrail.
//
// Segment order is a contract: base instructions, persona, mode
// directive, context, then (when weak) the guardrail hint immediately
// before the user question, which is always last.
type Composer struct {
	cfg config.GuardrailConfig
}

func NewComposer(cfg config.GuardrailConfig) *Composer {
	return &Composer{cfg: cfg}
}

// Weak reports whether the retrieval confidence falls below the
// configured thresholds.
func (c *Composer) Weak(r domain.RetrievalResult) bool {
	return r.Count == 0 || r.MaxScore < c.cfg.MinMaxScore || r.AvgScore < c.cfg.MinAvgScore
}

// Compose builds the prompt segments for one question.
func (c *Composer) Compose(question, system, personaBlock, modeText string, r domain.RetrievalResult) []domain.Message {
	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleSystem, Content: "PROFILE\n" + personaBlock},
		{Role: domain.RoleSystem, Content: "MODE\n" + modeText},
		{Role: domain.RoleSystem, Content: "CONTEXT\n" + ContextBlock(r)},
	}

	if c.Weak(r) {
		messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: weakContextHint})
	}

	return append(messages, domain.Message{Role: domain.RoleUser, Content: question})
}

// ContextBlock concatenates the retrieved chunks, each prefixed with
// its source file and heading path.
func ContextBlock(r domain.RetrievalResult) string {
	parts := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		parts = append(parts, fmt.Sprintf("[Source: %s#%s]\n%s",
			filepath.Base(res.Source), res.Heading, res.Text))
	}
	return strings.Join(parts, "\n\n")
}

// SourcesFooter renders the compact source attribution line shown
// alongside an answer.
func SourcesFooter(r domain.RetrievalResult) string {
	parts := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		parts = append(parts, fmt.Sprintf("[Doc: %s#%s]", filepath.Base(res.Source), res.Heading))
	}
	return strings.Join(parts, " ")
}
