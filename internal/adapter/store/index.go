// Package store persists the searchable index as two artifacts: a
// bbolt file holding the normalized chunk vectors and a JSON metadata
// file holding the ordered chunk records. The two must stay in
// lockstep (same count, same order) or retrieval treats the pair as
// corrupt and asks for a rebuild.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"codex/internal/domain"
)

var bucketVectors = []byte("vectors")

// Write persists vectors and metadata with an atomic full replace:
// both artifacts are written to temporary paths and renamed into place
// only on success, so a concurrent reader never sees a half-written
// file.
func Write(indexPath, metaPath string, vectors [][]float32, meta domain.IndexMetadata) error {
	if len(vectors) != meta.Count || len(meta.Chunks) != meta.Count {
		return fmt.Errorf("metadata out of lockstep: %d vectors, %d chunks, count %d",
			len(vectors), len(meta.Chunks), meta.Count)
	}
	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		return err
	}

	tmpIndex := indexPath + ".tmp"
	tmpMeta := metaPath + ".tmp"
	// A stale tmp file from a crashed build would make bbolt reuse its
	// contents.
	os.Remove(tmpIndex)

	if err := writeVectors(tmpIndex, vectors, meta.Dimension); err != nil {
		os.Remove(tmpIndex)
		return err
	}

	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		os.Remove(tmpIndex)
		return err
	}
	if err := os.WriteFile(tmpMeta, metaData, 0644); err != nil {
		os.Remove(tmpIndex)
		return err
	}

	if err := os.Rename(tmpIndex, indexPath); err != nil {
		os.Remove(tmpIndex)
		os.Remove(tmpMeta)
		return err
	}
	if err := os.Rename(tmpMeta, metaPath); err != nil {
		os.Remove(tmpMeta)
		return err
	}
	return nil
}

func writeVectors(path string, vectors [][]float32, dimension int) error {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to open index file: %w", err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketVectors)
		if err != nil {
			return err
		}
		for i, vec := range vectors {
			if len(vec) != dimension {
				return fmt.Errorf("vector %d: dimension %d, expected %d", i, len(vec), dimension)
			}
			key := make([]byte, 4)
			binary.BigEndian.PutUint32(key, uint32(i))
			if err := b.Put(key, encodeVector(vec)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Snapshot is a read-only in-memory view of one persisted index. The
// retriever loads a fresh snapshot per query; no mutable state is
// shared between concurrent retrievals.
type Snapshot struct {
	Meta    domain.IndexMetadata
	vectors [][]float32
}

// Load reads the persisted pair. Absent or unreadable files yield
// domain.ErrMissingIndex; so does a vector/metadata count mismatch,
// which can be observed transiently while a rebuild swaps files in.
func Load(indexPath, metaPath string) (*Snapshot, error) {
	metaData, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", domain.ErrMissingIndex, err)
	}
	var meta domain.IndexMetadata
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("%w (corrupt metadata: %v)", domain.ErrMissingIndex, err)
	}
	if len(meta.Chunks) != meta.Count {
		return nil, fmt.Errorf("%w (metadata lists %d chunks, count says %d)",
			domain.ErrMissingIndex, len(meta.Chunks), meta.Count)
	}

	vectors, err := readVectors(indexPath, meta.Dimension)
	if err != nil {
		return nil, err
	}
	if len(vectors) != meta.Count {
		return nil, fmt.Errorf("%w (index holds %d vectors, metadata expects %d)",
			domain.ErrMissingIndex, len(vectors), meta.Count)
	}

	return &Snapshot{Meta: meta, vectors: vectors}, nil
}

func readVectors(path string, dimension int) ([][]float32, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w (%v)", domain.ErrMissingIndex, err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w (failed to open index: %v)", domain.ErrMissingIndex, err)
	}
	defer db.Close()

	var vectors [][]float32
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		if b == nil {
			return fmt.Errorf("%w (index has no vectors bucket)", domain.ErrMissingIndex)
		}
		return b.ForEach(func(k, v []byte) error {
			vec, err := decodeVector(v)
			if err != nil {
				return fmt.Errorf("%w (vector %d: %v)", domain.ErrMissingIndex, binary.BigEndian.Uint32(k), err)
			}
			if dimension > 0 && len(vec) != dimension {
				return fmt.Errorf("%w (vector %d has dimension %d, metadata says %d)",
					domain.ErrMissingIndex, binary.BigEndian.Uint32(k), len(vec), dimension)
			}
			vectors = append(vectors, vec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// Hit is one nearest-neighbor candidate in raw search order.
type Hit struct {
	ID    int
	Score float64
}

// Search returns the k nearest vectors by inner product, descending.
// Vectors are normalized at embed time, so the inner product
// approximates cosine similarity.
func (s *Snapshot) Search(query []float32, k int) []Hit {
	if k > len(s.vectors) {
		k = len(s.vectors)
	}
	if k <= 0 {
		return nil
	}

	hits := make([]Hit, 0, len(s.vectors))
	for i, vec := range s.vectors {
		hits = append(hits, Hit{ID: i, Score: innerProduct(query, vec)})
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits[:k]
}

// Count returns the number of indexed vectors.
func (s *Snapshot) Count() int {
	return len(s.vectors)
}

func innerProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, x := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("vector payload length %d not a multiple of 4", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
