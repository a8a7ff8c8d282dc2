package embedding

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"codex/internal/domain"
	"codex/internal/log"
)

const embedTimeout = 60 * time.Second

// OpenAIEmbedder is the model-based strategy, backed by an
// OpenAI-compatible embeddings endpoint. The underlying model is
// resolved lazily on first use: the primary model is probed once, the
// fallback model is probed if the primary fails, and the outcome
// (success or fatal error) is cached for the life of the process.
// Concurrent first calls share a single probe via sync.Once.
type OpenAIEmbedder struct {
	client    *openai.Client
	primary   string
	fallback  string
	batchSize int
	logger    log.Logger

	once    sync.Once
	model   string
	initErr error
}

func NewOpenAIEmbedder(apiKeyEnv, primaryModel, fallbackModel string, batchSize int, logger log.Logger) (*OpenAIEmbedder, error) {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: %s is not set", domain.ErrConfig, apiKeyEnv)
	}
	if batchSize <= 0 {
		batchSize = 32
	}

	return &OpenAIEmbedder{
		client:    openai.NewClient(key),
		primary:   primaryModel,
		fallback:  fallbackModel,
		batchSize: batchSize,
		logger:    logger,
	}, nil
}

// resolveModel probes the primary model, then the fallback. Both
// failing is fatal; the result is cached either way.
func (e *OpenAIEmbedder) resolveModel() error {
	e.once.Do(func() {
		if err := e.probe(e.primary); err == nil {
			e.model = e.primary
			e.logger.Info("embedding model ready", "model", e.primary)
			return
		} else if e.fallback == "" {
			e.initErr = fmt.Errorf("%w: embedding model %s unavailable: %v", domain.ErrConfig, e.primary, err)
			return
		} else {
			e.logger.Warn("primary embedding model unavailable, trying fallback",
				"primary", e.primary, "fallback", e.fallback, "err", err)
		}

		if err := e.probe(e.fallback); err != nil {
			e.initErr = fmt.Errorf("%w: no embedding model available (primary %s, fallback %s): %v",
				domain.ErrConfig, e.primary, e.fallback, err)
			return
		}
		e.model = e.fallback
		e.logger.Info("embedding model ready", "model", e.fallback)
	})
	return e.initErr
}

func (e *OpenAIEmbedder) probe(model string) error {
	ctx, cancel := context.WithTimeout(context.Background(), embedTimeout)
	defer cancel()

	_, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{"ping"},
		Model: openai.EmbeddingModel(model),
	})
	return err
}

func (e *OpenAIEmbedder) Embed(texts []string) ([][]float32, error) {
	if err := e.resolveModel(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := e.embedBatch(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d failed: %w", start/e.batchSize+1, err)
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

func (e *OpenAIEmbedder) embedBatch(texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), embedTimeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			continue
		}
		vec := make([]float32, len(item.Embedding))
		copy(vec, item.Embedding)
		Normalize(vec)
		vectors[item.Index] = vec
	}
	return vectors, nil
}

func (e *OpenAIEmbedder) EmbedOne(text string) ([]float32, error) {
	vectors, err := e.Embed([]string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}
	return vectors[0], nil
}

func (e *OpenAIEmbedder) Dimension() int {
	switch e.primary {
	case "text-embedding-3-large":
		return 3072
	default:
		return 1536
	}
}

func (e *OpenAIEmbedder) ModelName() string {
	if e.model != "" {
		return e.model
	}
	return e.primary
}
