package usecase

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codex/config"
	"codex/internal/adapter/embedding"
	"codex/internal/adapter/persona"
	"codex/internal/adapter/prompts"
	"codex/internal/domain"
	"codex/internal/log"
)

type fakeGenerator struct {
	reply    string
	err      error
	messages []domain.Message
}

func (g *fakeGenerator) Complete(messages []domain.Message, temperature float32, maxTokens int) (string, error) {
	g.messages = messages
	return g.reply, g.err
}

func (g *fakeGenerator) ModelName() string { return "fake" }

type fakeQuestionLog struct {
	questions []string
}

func (l *fakeQuestionLog) Log(question string) {
	l.questions = append(l.questions, question)
}

func testProfile() *persona.Profile {
	return &persona.Profile{
		Name:    "Alex Rivers",
		Title:   "Staff Engineer",
		Summary: "Backend engineer focused on search infrastructure.",
	}
}

func newTestAsker(t *testing.T, gen *fakeGenerator, qlog *fakeQuestionLog) *Asker {
	t.Helper()

	dir := t.TempDir()
	embedder := embedding.NewMockEmbedder(64)
	retriever := NewRetriever(embedder, retrieveCfg(),
		filepath.Join(dir, "index.db"), filepath.Join(dir, "meta.json"), log.NewNop())

	return NewAsker(
		retriever,
		NewComposer(guardrailCfg()),
		prompts.NewStore(""),
		testProfile(),
		gen,
		qlog,
		config.GenerationConfig{MaxTokens: 1024},
		log.NewNop(),
	)
}

func TestAskComposesAndGenerates(t *testing.T) {
	gen := &fakeGenerator{reply: "I lead by pairing and clear written plans."}
	qlog := &fakeQuestionLog{}
	asker := newTestAsker(t, gen, qlog)

	answer, err := asker.Ask("Tell me about your leadership style", "Interview", false, 0.4)
	require.NoError(t, err)

	assert.Equal(t, gen.reply, answer.Text)
	assert.Equal(t, []string{"Tell me about your leadership style"}, qlog.questions)

	// No index on disk, so the answer degrades to empty context with
	// the guardrail hint in place.
	assert.True(t, answer.Retrieval.Failed())
	assert.Empty(t, answer.Sources)

	require.Len(t, gen.messages, 6)
	assert.Contains(t, gen.messages[1].Content, "Alex Rivers")
	assert.Contains(t, gen.messages[4].Content, "Context appears thin")
	last := gen.messages[len(gen.messages)-1]
	assert.Equal(t, domain.RoleUser, last.Role)
	assert.Equal(t, "Tell me about your leadership style", last.Content)
}

func TestAskUnknownMode(t *testing.T) {
	asker := newTestAsker(t, &fakeGenerator{reply: "x"}, &fakeQuestionLog{})

	_, err := asker.Ask("Hello", "Freestyle", false, 0.4)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestRelatedQuestions(t *testing.T) {
	related := relatedQuestions("What are your biggest achievements in teamwork?")
	require.NotEmpty(t, related)
	assert.LessOrEqual(t, len(related), 2)

	var mentionsTopic bool
	for _, q := range related {
		if strings.Contains(q, "achievements") || strings.Contains(q, "teamwork") {
			mentionsTopic = true
		}
	}
	assert.True(t, mentionsTopic)

	fallback := relatedQuestions("zzz qqq")
	assert.Len(t, fallback, 2)
}
