package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunk.TargetWords != 950 {
		t.Errorf("expected TargetWords=950, got %d", cfg.Chunk.TargetWords)
	}
	if cfg.Chunk.OverlapWords != 120 {
		t.Errorf("expected OverlapWords=120, got %d", cfg.Chunk.OverlapWords)
	}
	if cfg.Retrieve.TopK != 4 {
		t.Errorf("expected TopK=4, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Retrieve.MaxPerSource != 2 {
		t.Errorf("expected MaxPerSource=2, got %d", cfg.Retrieve.MaxPerSource)
	}
	if cfg.Guardrail.MinMaxScore != 0.20 {
		t.Errorf("expected MinMaxScore=0.20, got %f", cfg.Guardrail.MinMaxScore)
	}
	if cfg.Guardrail.MinAvgScore != 0.18 {
		t.Errorf("expected MinAvgScore=0.18, got %f", cfg.Guardrail.MinAvgScore)
	}
	if cfg.Embedding.BatchSize != 32 {
		t.Errorf("expected BatchSize=32, got %d", cfg.Embedding.BatchSize)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "codex.yaml")

	content := `
chunk:
  target_words: 500
embedding:
  provider: openai
retrieve:
  top_k: 8
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chunk.TargetWords != 500 {
		t.Errorf("expected TargetWords=500, got %d", cfg.Chunk.TargetWords)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %s", cfg.Embedding.Provider)
	}
	if cfg.Retrieve.TopK != 8 {
		t.Errorf("expected TopK=8, got %d", cfg.Retrieve.TopK)
	}
	// Untouched sections keep their defaults.
	if cfg.Chunk.OverlapWords != 120 {
		t.Errorf("expected OverlapWords=120, got %d", cfg.Chunk.OverlapWords)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "codex.yaml")

	content := `
generation:
  max_tokens: 512
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Generation.MaxTokens != 512 {
		t.Errorf("expected MaxTokens=512, got %d", cfg.Generation.MaxTokens)
	}
}

func TestCachePaths(t *testing.T) {
	root := filepath.Join("home", "user", "project")
	if got, want := IndexPath(root), filepath.Join(root, ".codex", "cache", "index.db"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got, want := MetaPath(root), filepath.Join(root, ".codex", "cache", "meta.json"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
