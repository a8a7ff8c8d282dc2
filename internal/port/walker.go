package port

import "codex/internal/domain"

// CorpusSource enumerates and reads the markdown documents the index
// is built from.
type CorpusSource interface {
	// Load reads every matching document under root.
	Load(root string) ([]domain.Document, error)
}

// QuestionLogger records incoming questions on a side channel.
// Implementations must swallow their own failures.
type QuestionLogger interface {
	Log(question string)
}
