package port

import "codex/internal/domain"

// Generator is the external chat-completion collaborator. Provider
// failures (missing credential, rate limit, network) are opaque at
// this layer and never retried here.
type Generator interface {
	// Complete sends the ordered prompt segments and returns the
	// generated text.
	Complete(messages []domain.Message, temperature float32, maxTokens int) (string, error)

	// ModelName returns the name of the chat model.
	ModelName() string
}
