package port

// Embedder maps text to fixed-dimension vectors.
//
// The same strategy (and model) must be used at index-build time and
// query time; mixing strategies makes similarity scores meaningless.
// Every returned vector is L2-normalized, except the all-zero vector
// which is returned as-is.
type Embedder interface {
	// Embed generates one normalized vector per input text.
	Embed(texts []string) ([][]float32, error)

	// EmbedOne generates a normalized vector for a single text.
	EmbedOne(text string) ([]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName identifies the strategy/model for the metadata file.
	ModelName() string
}
