package usecase

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"codex/config"
	"codex/internal/adapter/cache"
	"codex/internal/adapter/embedding"
	"codex/internal/adapter/store"
	"codex/internal/domain"
	"codex/internal/log"
	"codex/internal/port"
)

// Retriever answers one query against the persisted index: embed,
// search, boost, diversify. It loads a fresh snapshot per query, so a
// rebuild between queries is picked up automatically.
//
// Retrieve never returns a Go error: every failure degrades to a
// RetrievalResult carrying an error code, and the caller proceeds with
// empty context.
type Retriever struct {
	embedder  port.Embedder
	cfg       config.RetrieveConfig
	indexPath string
	metaPath  string
	cache     *cache.QueryCache
	logger    log.Logger
}

func NewRetriever(embedder port.Embedder, cfg config.RetrieveConfig, indexPath, metaPath string, logger log.Logger) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
	if cfg.CandidateMultiplier <= 0 {
		cfg.CandidateMultiplier = 3
	}
	if cfg.MaxPerSource <= 0 {
		cfg.MaxPerSource = 2
	}
	return &Retriever{
		embedder:  embedder,
		cfg:       cfg,
		indexPath: indexPath,
		metaPath:  metaPath,
		logger:    logger,
	}
}

// WithCache enables result memoization for repeated queries. Entries
// are invalidated when the index is rebuilt.
func (r *Retriever) WithCache(c *cache.QueryCache) *Retriever {
	r.cache = c
	return r
}

// TopK returns the configured default result count.
func (r *Retriever) TopK() int {
	return r.cfg.TopK
}

// Retrieve runs the query and returns the topK best chunks with
// aggregate confidence statistics.
func (r *Retriever) Retrieve(query string, topK int, prioritizeReflection bool) domain.RetrievalResult {
	if topK <= 0 {
		topK = r.cfg.TopK
	}

	var cacheKey, generation string
	if r.cache != nil {
		cacheKey = cache.Key(query, topK, prioritizeReflection)
		generation = r.indexGeneration()
		if cached, ok := r.cache.Get(cacheKey, generation); ok {
			return cached
		}
	}

	snap, err := r.loadSnapshot()
	if err != nil {
		return r.failure(domain.ErrCodeMissingIndex, err)
	}

	queryVec, err := r.embedder.EmbedOne(query)
	if err != nil {
		return r.failure(domain.ErrCodeRetrievalFailed, err)
	}
	if len(queryVec) != snap.Meta.Dimension {
		return r.failure(domain.ErrCodeDimension,
			errors.New("query embedding dimension does not match the stored index; rebuild with the current embedding config"))
	}
	embedding.Normalize(queryVec)

	searchK := topK * r.cfg.CandidateMultiplier
	if searchK > snap.Count() {
		searchK = snap.Count()
	}
	hits := snap.Search(queryVec, searchK)

	queryWords := wordSet(query)
	perSource := make(map[string]int)
	var accepted []domain.RetrievedChunk

	for _, hit := range hits {
		if hit.ID < 0 || hit.ID >= len(snap.Meta.Chunks) {
			continue
		}
		chunk := snap.Meta.Chunks[hit.ID]
		score := hit.Score

		if prioritizeReflection && r.isReflection(chunk.Source) {
			score *= r.cfg.ReflectionBoost
		}
		score *= 1.0 + r.keywordBoost(queryWords, chunk.Text)

		if perSource[chunk.Source] >= r.cfg.MaxPerSource {
			continue
		}
		perSource[chunk.Source]++

		accepted = append(accepted, domain.RetrievedChunk{Chunk: chunk, Score: score})
		if len(accepted) >= topK {
			break
		}
	}

	// Boosting can reorder relative to the raw search order, so the
	// final sort pass is mandatory.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score > accepted[j].Score
	})

	result := domain.RetrievalResult{
		Results: accepted,
		Count:   len(accepted),
	}
	for _, a := range accepted {
		if a.Score > result.MaxScore {
			result.MaxScore = a.Score
		}
		result.AvgScore += a.Score
	}
	if len(accepted) > 0 {
		result.AvgScore /= float64(len(accepted))
	}

	if r.cache != nil {
		r.cache.Put(cacheKey, generation, result)
	}
	return result
}

// indexGeneration fingerprints the current index files so cached
// results die with the index they were computed from.
func (r *Retriever) indexGeneration() string {
	info, err := os.Stat(r.metaPath)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size())
}

// loadSnapshot retries once: a rebuild swaps files in with renames,
// and a reader can land in the brief window between them.
func (r *Retriever) loadSnapshot() (*store.Snapshot, error) {
	snap, err := store.Load(r.indexPath, r.metaPath)
	if err == nil {
		return snap, nil
	}
	return store.Load(r.indexPath, r.metaPath)
}

func (r *Retriever) isReflection(source string) bool {
	return r.cfg.ReflectionMarker != "" &&
		strings.Contains(strings.ToLower(source), r.cfg.ReflectionMarker)
}

// keywordBoost returns the additive boost fraction for literal word
// overlap between query and chunk, capped.
func (r *Retriever) keywordBoost(queryWords map[string]struct{}, chunkText string) float64 {
	if r.cfg.KeywordBoostPerWord <= 0 || len(queryWords) == 0 {
		return 0
	}

	common := 0
	for word := range wordSet(chunkText) {
		if _, ok := queryWords[word]; ok {
			common++
		}
	}
	boost := float64(common) * r.cfg.KeywordBoostPerWord
	if boost > r.cfg.KeywordBoostCap {
		boost = r.cfg.KeywordBoostCap
	}
	return boost
}

func (r *Retriever) failure(code string, err error) domain.RetrievalResult {
	r.logger.Error("retrieval failed", "code", code, "err", err)
	return domain.RetrievalResult{
		Results: []domain.RetrievedChunk{},
		ErrCode: code,
		ErrMsg:  err.Error(),
	}
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
