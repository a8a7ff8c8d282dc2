package embedding

import (
	"hash/fnv"
	"strings"
)

// MockEmbedder is a deterministic test embedder: every distinct
// lowercased word lands in one bucket with weight 1, so cosine
// similarity tracks word overlap closely. Not for production use.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dimension)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			h.Write([]byte(word))
			vec[h.Sum32()%uint32(e.dimension)] = 1
		}
		Normalize(vec)
		vectors[i] = vec
	}
	return vectors, nil
}

func (e *MockEmbedder) EmbedOne(text string) ([]float32, error) {
	vectors, err := e.Embed([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
