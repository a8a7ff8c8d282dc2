package embedding

import (
	"math"
	"testing"
)

func TestHashEmbedderDeterministic(t *testing.T) {
	e := NewHashEmbedder(384)

	a, err := e.EmbedOne("leadership and mentoring in small teams")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.EmbedOne("leadership and mentoring in small teams")
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at component %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestHashEmbedderUnitNorm(t *testing.T) {
	e := NewHashEmbedder(384)

	texts := []string{
		"a",
		"Tell me about leadership",
		"the quick brown fox jumps over the lazy dog again and again and again",
	}
	vectors, err := e.Embed(texts)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range vectors {
		if norm := Norm(v); math.Abs(norm-1.0) > 1e-5 {
			t.Errorf("text %d: expected unit norm, got %f", i, norm)
		}
	}
}

func TestHashEmbedderEmptyText(t *testing.T) {
	e := NewHashEmbedder(384)

	v, err := e.EmbedOne("")
	if err != nil {
		t.Fatal(err)
	}
	if Norm(v) != 0 {
		t.Errorf("expected zero vector for empty text, got norm %f", Norm(v))
	}
}

func TestHashEmbedderSimilarityOrdering(t *testing.T) {
	e := NewHashEmbedder(384)

	query, _ := e.EmbedOne("tell me about leadership")
	related, _ := e.EmbedOne("tell me about leadership and mentoring")
	unrelated, _ := e.EmbedOne("favourite pasta recipes")

	if dot(query, related) <= dot(query, unrelated) {
		t.Errorf("related text should score higher: related=%f unrelated=%f",
			dot(query, related), dot(query, unrelated))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	v := []float32{3, 4, 0}
	Normalize(v)
	if math.Abs(Norm(v)-1.0) > 1e-6 {
		t.Fatalf("expected unit norm after normalize, got %f", Norm(v))
	}

	before := make([]float32, len(v))
	copy(before, v)
	Normalize(v)
	for i := range v {
		if math.Abs(float64(v[i]-before[i])) > 1e-6 {
			t.Errorf("normalizing a normalized vector changed component %d", i)
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	Normalize(v)
	for i, x := range v {
		if x != 0 {
			t.Errorf("zero vector changed at component %d: %f", i, x)
		}
	}
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
