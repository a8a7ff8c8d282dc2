package domain

// Document is a single markdown file from the corpus. The path doubles
// as its stable identifier.
type Document struct {
	Path    string
	Content string
}

// Chunk is the unit of retrieval: a bounded span of document text with
// its heading context. Chunk identity is positional: the metadata file
// and the vector index store chunks in the same order.
type Chunk struct {
	Text    string `json:"text"`
	Source  string `json:"source"`
	Heading string `json:"heading"`
}

// RetrievedChunk is a chunk with its final (boosted) similarity score.
type RetrievedChunk struct {
	Chunk
	Score float64 `json:"score"`
}

// RetrievalResult is the outcome of one query. Retrieval never returns
// a Go error past its boundary; failures are carried in ErrCode/ErrMsg
// with Count=0, and callers proceed with empty context.
type RetrievalResult struct {
	Results  []RetrievedChunk `json:"results"`
	Count    int              `json:"count"`
	MaxScore float64          `json:"max_score"`
	AvgScore float64          `json:"avg_score"`
	ErrCode  string           `json:"error_code,omitempty"`
	ErrMsg   string           `json:"error,omitempty"`
}

// Failed reports whether the retrieval degraded to empty context.
func (r RetrievalResult) Failed() bool {
	return r.ErrCode != ""
}

// Error codes carried by RetrievalResult.
const (
	ErrCodeMissingIndex    = "missing_index"
	ErrCodeDimension       = "dimension_mismatch"
	ErrCodeRetrievalFailed = "retrieval_failed"
)

// Message is one role-tagged prompt segment for the generation
// collaborator. Order matters: the user question is always last.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// IndexMetadata mirrors meta.json, persisted next to the vector index.
// Chunks must match the index's vectors in count and order.
type IndexMetadata struct {
	Dimension int     `json:"dimension"`
	Count     int     `json:"count"`
	Model     string  `json:"model"`
	Chunks    []Chunk `json:"chunks"`
}
