// Package embedding provides the two embedding strategies: a
// model-based encoder behind an OpenAI-compatible API and a
// deterministic hash-based fallback for constrained deployments. The
// strategy is an explicit configuration choice, never a silent
// fallback on error.
package embedding

import (
	"fmt"

	"codex/config"
	"codex/internal/domain"
	"codex/internal/log"
	"codex/internal/port"
)

// FromConfig constructs the configured embedding strategy.
func FromConfig(cfg config.EmbeddingConfig, logger log.Logger) (port.Embedder, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIEmbedder(cfg.APIKeyEnv, cfg.Model, cfg.FallbackModel, cfg.BatchSize, logger)
	case "hash":
		return NewHashEmbedder(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrConfig, cfg.Provider)
	}
}
