package embedding

import (
	"hash/fnv"
	"strings"
)

const (
	hashMaxWords   = 20
	hashMaxBigrams = 10

	reverseWeight = 0.7
	bigramWeight  = 0.5
)

// HashEmbedder is the zero-dependency fallback strategy: a
// deterministic bag-of-hashed-tokens encoding. For each of the first
// 20 lowercased words it hashes the token, its reverse, and adjacent
// bigrams into buckets of the target dimension, weighting earlier
// tokens higher, then L2-normalizes.
//
// Hard consistency requirement: the exact same scheme must run at
// index-build time and query time. Indexing with one scheme and
// querying with another produces meaningless similarity scores.
type HashEmbedder struct {
	dimension int
}

func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &HashEmbedder{dimension: dimension}
}

func (e *HashEmbedder) Embed(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.encode(text)
	}
	return vectors, nil
}

func (e *HashEmbedder) EmbedOne(text string) ([]float32, error) {
	return e.encode(text), nil
}

func (e *HashEmbedder) encode(text string) []float32 {
	vec := make([]float32, e.dimension)
	words := strings.Fields(strings.ToLower(text))

	limit := len(words)
	if limit > hashMaxWords {
		limit = hashMaxWords
	}

	for i := 0; i < limit; i++ {
		weight := 1.0 / float32(i+1)
		vec[e.bucket(words[i])] += weight
		vec[e.bucket(reverse(words[i]))] += weight * reverseWeight
	}

	for i := 0; i+1 < len(words) && i < hashMaxBigrams; i++ {
		weight := bigramWeight / float32(i+1)
		vec[e.bucket(words[i]+"_"+words[i+1])] += weight
	}

	Normalize(vec)
	return vec
}

func (e *HashEmbedder) bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(e.dimension))
}

func (e *HashEmbedder) Dimension() int {
	return e.dimension
}

func (e *HashEmbedder) ModelName() string {
	return "hash-v1"
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
