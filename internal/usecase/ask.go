package usecase

import (
	"fmt"
	"math/rand"
	"strings"

	"codex/config"
	"codex/internal/adapter/persona"
	"codex/internal/adapter/prompts"
	"codex/internal/domain"
	"codex/internal/log"
	"codex/internal/port"
)

// Asker wires the full answer path: log the question, retrieve
// context, compose the prompt, dispatch to the generation
// collaborator.
type Asker struct {
	retriever *Retriever
	composer  *Composer
	prompts   *prompts.Store
	profile   *persona.Profile
	generator port.Generator
	qlog      port.QuestionLogger
	cfg       config.GenerationConfig
	logger    log.Logger
}

func NewAsker(
	retriever *Retriever,
	composer *Composer,
	promptStore *prompts.Store,
	profile *persona.Profile,
	generator port.Generator,
	qlog port.QuestionLogger,
	cfg config.GenerationConfig,
	logger log.Logger,
) *Asker {
	return &Asker{
		retriever: retriever,
		composer:  composer,
		prompts:   promptStore,
		profile:   profile,
		generator: generator,
		qlog:      qlog,
		cfg:       cfg,
		logger:    logger,
	}
}

// Answer is the full response to one question.
type Answer struct {
	Text      string
	Retrieval domain.RetrievalResult
	Sources   string
	Related   []string
}

// Ask answers a single question in the given response mode. A failed
// retrieval degrades to empty context; a failed generation call is a
// provider error surfaced to the caller.
func (a *Asker) Ask(question, mode string, reflective bool, temperature float32) (*Answer, error) {
	if a.qlog != nil {
		a.qlog.Log(question)
	}

	system, err := a.prompts.System()
	if err != nil {
		return nil, err
	}
	modeText, err := a.prompts.Mode(mode)
	if err != nil {
		return nil, err
	}

	r := a.retriever.Retrieve(question, a.retriever.TopK(), reflective)
	if r.Failed() {
		a.logger.Warn("answering with empty context", "code", r.ErrCode, "err", r.ErrMsg)
	}

	messages := a.composer.Compose(question, system, a.profile.PromptBlock(), modeText, r)

	text, err := a.generator.Complete(messages, temperature, a.cfg.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &Answer{
		Text:      text,
		Retrieval: r,
		Sources:   SourcesFooter(r),
		Related:   relatedQuestions(question),
	}, nil
}

var questionTemplates = []string{
	"Can you tell me more about %s?",
	"What's your experience with %s?",
	"How did you develop your skills in %s?",
	"What challenges did you face with %s?",
	"What's your biggest accomplishment in %s?",
}

var professionalTopics = []string{
	"leadership", "teamwork", "projects", "challenges", "goals",
	"achievements", "skills", "experience", "growth", "learning",
}

var fallbackTopics = []string{
	"your background", "your projects", "your skills", "your goals",
}

// relatedQuestions suggests follow-up questions keyed on topics found
// in the query, falling back to general ones.
func relatedQuestions(query string) []string {
	lower := strings.ToLower(query)

	var topics []string
	for _, topic := range professionalTopics {
		if strings.Contains(lower, topic) {
			topics = append(topics, topic)
		}
	}
	if len(topics) == 0 {
		picks := rand.Perm(len(fallbackTopics))
		topics = []string{fallbackTopics[picks[0]], fallbackTopics[picks[1]]}
	}
	if len(topics) > 2 {
		topics = topics[:2]
	}

	related := make([]string, 0, len(topics))
	for _, topic := range topics {
		template := questionTemplates[rand.Intn(len(questionTemplates))]
		related = append(related, fmt.Sprintf(template, topic))
	}
	return related
}
