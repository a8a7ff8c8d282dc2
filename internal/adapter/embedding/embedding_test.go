package embedding

import (
	"errors"
	"testing"

	"codex/config"
	"codex/internal/domain"
	"codex/internal/log"
)

func TestFromConfigHash(t *testing.T) {
	e, err := FromConfig(config.EmbeddingConfig{Provider: "hash", Dimension: 128}, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if e.Dimension() != 128 {
		t.Errorf("expected dimension 128, got %d", e.Dimension())
	}
	if e.ModelName() != "hash-v1" {
		t.Errorf("unexpected model name %q", e.ModelName())
	}
}

func TestFromConfigUnknownProvider(t *testing.T) {
	_, err := FromConfig(config.EmbeddingConfig{Provider: "quantum"}, log.NewNop())
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestFromConfigOpenAIMissingKey(t *testing.T) {
	t.Setenv("CODEX_TEST_ABSENT_KEY", "")

	_, err := FromConfig(config.EmbeddingConfig{
		Provider:  "openai",
		Model:     "text-embedding-3-small",
		APIKeyEnv: "CODEX_TEST_ABSENT_KEY",
	}, log.NewNop())
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("expected ErrConfig for missing API key, got %v", err)
	}
}
