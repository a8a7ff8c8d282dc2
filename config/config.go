package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the codex agent.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Chunk      ChunkConfig      `yaml:"chunk"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	Guardrail  GuardrailConfig  `yaml:"guardrail"`
	Generation GenerationConfig `yaml:"generation"`
	Persona    PersonaConfig    `yaml:"persona"`
	Prompts    PromptsConfig    `yaml:"prompts"`
	QLog       QLogConfig       `yaml:"question_log"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CorpusConfig selects the markdown files the index is built from.
type CorpusConfig struct {
	Dir      string   `yaml:"dir"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// ChunkConfig controls the markdown splitter.
type ChunkConfig struct {
	TargetWords  int `yaml:"target_words"`
	OverlapWords int `yaml:"overlap_words"`
}

// EmbeddingConfig selects the embedding strategy. The provider is an
// explicit choice, never a silent fallback: "openai" requires an API
// key, "hash" trades retrieval quality for zero runtime dependency.
type EmbeddingConfig struct {
	Provider      string `yaml:"provider"` // "openai" or "hash"
	Model         string `yaml:"model"`
	FallbackModel string `yaml:"fallback_model"`
	APIKeyEnv     string `yaml:"api_key_env"`
	Dimension     int    `yaml:"dimension"` // hash strategy only
	BatchSize     int    `yaml:"batch_size"`
}

// RetrieveConfig holds retrieval scoring heuristics.
type RetrieveConfig struct {
	TopK                int     `yaml:"top_k"`
	CandidateMultiplier int     `yaml:"candidate_multiplier"`
	MaxPerSource        int     `yaml:"max_per_source"`
	ReflectionBoost     float64 `yaml:"reflection_boost"`
	ReflectionMarker    string  `yaml:"reflection_marker"`
	KeywordBoostPerWord float64 `yaml:"keyword_boost_per_word"`
	KeywordBoostCap     float64 `yaml:"keyword_boost_cap"`
}

// GuardrailConfig holds the weak-context thresholds. These are tuning
// knobs, not hard law; the defaults come from observed cosine scores.
type GuardrailConfig struct {
	MinMaxScore float64 `yaml:"min_max_score"`
	MinAvgScore float64 `yaml:"min_avg_score"`
}

// GenerationConfig configures the chat-completion collaborator.
type GenerationConfig struct {
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// PersonaConfig points at the subject's profile file.
type PersonaConfig struct {
	ProfilePath string `yaml:"profile_path"`
}

// PromptsConfig optionally overrides the embedded prompt files.
type PromptsConfig struct {
	Dir string `yaml:"dir"`
}

// QLogConfig configures the question-logging side channel. The form
// fields come from env vars so deployment secrets stay out of YAML.
type QLogConfig struct {
	Dir               string `yaml:"dir"`
	FormURLEnv        string `yaml:"form_url_env"`
	FormTimestampEnv  string `yaml:"form_timestamp_field_env"`
	FormQuestionEnv   string `yaml:"form_question_field_env"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir:      "data",
			Includes: []string{"**/*.md"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/README.md"},
		},
		Chunk: ChunkConfig{
			TargetWords:  950,
			OverlapWords: 120,
		},
		Embedding: EmbeddingConfig{
			Provider:      "hash",
			Model:         "text-embedding-3-small",
			FallbackModel: "text-embedding-ada-002",
			APIKeyEnv:     "OPENAI_API_KEY",
			Dimension:     384,
			BatchSize:     32,
		},
		Retrieve: RetrieveConfig{
			TopK:                4,
			CandidateMultiplier: 3,
			MaxPerSource:        2,
			ReflectionBoost:     1.3,
			ReflectionMarker:    "self_reflection",
			KeywordBoostPerWord: 0.1,
			KeywordBoostCap:     0.3,
		},
		Guardrail: GuardrailConfig{
			MinMaxScore: 0.20,
			MinAvgScore: 0.18,
		},
		Generation: GenerationConfig{
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.4,
			MaxTokens:   1024,
		},
		Persona: PersonaConfig{
			ProfilePath: filepath.Join("data", "profile.yaml"),
		},
		QLog: QLogConfig{
			Dir:              "logs",
			FormURLEnv:       "QUESTION_FORM_URL",
			FormTimestampEnv: "QUESTION_FORM_TIMESTAMP_FIELD",
			FormQuestionEnv:  "QUESTION_FORM_QUESTION_FIELD",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for codex.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "codex.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".codex", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CacheDir returns the directory holding the persisted index artifacts.
func CacheDir(dir string) string {
	return filepath.Join(dir, ".codex", "cache")
}

// IndexPath returns the path of the binary vector-index file.
func IndexPath(dir string) string {
	return filepath.Join(CacheDir(dir), "index.db")
}

// MetaPath returns the path of the JSON metadata file.
func MetaPath(dir string) string {
	return filepath.Join(CacheDir(dir), "meta.json")
}

// EnsureCacheDir ensures the cache directory exists.
func EnsureCacheDir(dir string) error {
	return os.MkdirAll(CacheDir(dir), 0755)
}
