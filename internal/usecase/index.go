package usecase

import (
	"fmt"

	"codex/internal/adapter/store"
	"codex/internal/domain"
	"codex/internal/log"
	"codex/internal/port"
)

// Builder runs the offline index build: load the corpus, chunk, embed
// in batches, and atomically swap in the persisted index + metadata
// pair. Rebuilds are full-replace, never incremental.
type Builder struct {
	corpus    port.CorpusSource
	chunker   port.Chunker
	embedder  port.Embedder
	batchSize int
	indexPath string
	metaPath  string
	logger    log.Logger
}

func NewBuilder(
	corpus port.CorpusSource,
	chunker port.Chunker,
	embedder port.Embedder,
	batchSize int,
	indexPath, metaPath string,
	logger log.Logger,
) *Builder {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &Builder{
		corpus:    corpus,
		chunker:   chunker,
		embedder:  embedder,
		batchSize: batchSize,
		indexPath: indexPath,
		metaPath:  metaPath,
		logger:    logger,
	}
}

// BuildResult summarizes one index build.
type BuildResult struct {
	Documents int
	Chunks    int
	Dimension int
	Model     string
}

// Build indexes every markdown document under root. Any error is
// fatal and halts the build; the previous index stays in place.
// progress, if non-nil, is called after each embedded batch.
func (b *Builder) Build(root string, progress func(done, total int)) (*BuildResult, error) {
	docs, err := b.corpus.Load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents found under %s", domain.ErrEmptyCorpus, root)
	}
	b.logger.Info("corpus loaded", "documents", len(docs))

	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, b.chunker.Split(doc)...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks created from %d documents", domain.ErrEmptyCorpus, len(docs))
	}
	b.logger.Info("corpus chunked", "chunks", len(chunks))

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += b.batchSize {
		end := start + b.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, ch := range chunks[start:end] {
			texts = append(texts, ch.Text)
		}

		batch, err := b.embedder.Embed(texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch %d: %w", start/b.batchSize+1, err)
		}
		vectors = append(vectors, batch...)

		if progress != nil {
			progress(len(vectors), len(chunks))
		}
	}

	meta := domain.IndexMetadata{
		Dimension: len(vectors[0]),
		Count:     len(chunks),
		Model:     b.embedder.ModelName(),
		Chunks:    chunks,
	}

	if err := store.Write(b.indexPath, b.metaPath, vectors, meta); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}
	b.logger.Info("index persisted", "path", b.indexPath, "chunks", meta.Count, "dimension", meta.Dimension, "model", meta.Model)

	return &BuildResult{
		Documents: len(docs),
		Chunks:    len(chunks),
		Dimension: meta.Dimension,
		Model:     meta.Model,
	}, nil
}
