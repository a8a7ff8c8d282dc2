package port

import "codex/internal/domain"

type Chunker interface {
	Split(doc domain.Document) []domain.Chunk
}
