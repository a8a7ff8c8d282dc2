package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codex/internal/adapter/chunker"
	"codex/internal/adapter/corpus"
	"codex/internal/adapter/embedding"
	"codex/internal/domain"
	"codex/internal/log"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildIndexesCorpus(t *testing.T) {
	corpusDir := t.TempDir()
	writeCorpusFile(t, corpusDir, "career.md", "# Career\n\nLed the search team through two big migrations.")
	writeCorpusFile(t, corpusDir, "notes/hobbies.md", "# Hobbies\n\nWeekend trail running and sourdough baking.")
	writeCorpusFile(t, corpusDir, "ignore.txt", "not markdown")

	cacheDir := t.TempDir()
	indexPath := filepath.Join(cacheDir, "index.db")
	metaPath := filepath.Join(cacheDir, "meta.json")

	embedder := embedding.NewMockEmbedder(128)
	b := NewBuilder(
		corpus.NewWalker(nil, nil),
		chunker.NewMarkdownChunker(950, 120),
		embedder,
		32,
		indexPath, metaPath,
		log.NewNop(),
	)

	var lastDone, lastTotal int
	result, err := b.Build(corpusDir, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, 2, result.Chunks)
	assert.Equal(t, 128, result.Dimension)
	assert.Equal(t, "mock", result.Model)
	assert.Equal(t, lastTotal, lastDone)
	assert.Equal(t, result.Chunks, lastTotal)

	r := NewRetriever(embedder, retrieveCfg(), indexPath, metaPath, log.NewNop())
	got := r.Retrieve("search team migrations", 4, false)
	require.False(t, got.Failed())
	require.NotZero(t, got.Count)
	assert.Contains(t, got.Results[0].Source, "career.md")
	assert.Equal(t, "Career", got.Results[0].Heading)
}

func TestBuildEmptyCorpus(t *testing.T) {
	cacheDir := t.TempDir()
	b := NewBuilder(
		corpus.NewWalker(nil, nil),
		chunker.NewMarkdownChunker(950, 120),
		embedding.NewMockEmbedder(64),
		32,
		filepath.Join(cacheDir, "index.db"), filepath.Join(cacheDir, "meta.json"),
		log.NewNop(),
	)

	_, err := b.Build(t.TempDir(), nil)
	assert.True(t, errors.Is(err, domain.ErrEmptyCorpus))
}

func TestBuildReplacesPreviousIndex(t *testing.T) {
	corpusDir := t.TempDir()
	writeCorpusFile(t, corpusDir, "one.md", "# One\n\nFirst version of the corpus.")

	cacheDir := t.TempDir()
	indexPath := filepath.Join(cacheDir, "index.db")
	metaPath := filepath.Join(cacheDir, "meta.json")

	embedder := embedding.NewMockEmbedder(64)
	newBuilder := func() *Builder {
		return NewBuilder(
			corpus.NewWalker(nil, nil),
			chunker.NewMarkdownChunker(950, 120),
			embedder,
			32,
			indexPath, metaPath,
			log.NewNop(),
		)
	}

	_, err := newBuilder().Build(corpusDir, nil)
	require.NoError(t, err)

	writeCorpusFile(t, corpusDir, "two.md", "# Two\n\nSecond document joins the corpus.")
	result, err := newBuilder().Build(corpusDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Documents)

	r := NewRetriever(embedder, retrieveCfg(), indexPath, metaPath, log.NewNop())
	got := r.Retrieve("second document", 4, false)
	require.False(t, got.Failed())
	assert.Equal(t, 2, got.Count)
}
