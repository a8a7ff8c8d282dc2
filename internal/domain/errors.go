package domain

import "errors"

var (
	// ErrConfig marks fatal configuration problems: missing
	// credentials, unknown mode names, embedding dimension drift.
	ErrConfig = errors.New("configuration error")

	// ErrMissingIndex means the index or metadata file is absent or
	// unreadable. Recoverable by running a build.
	ErrMissingIndex = errors.New("index not found: run 'codex index' first")

	// ErrEmptyCorpus means a build found no documents or no chunks.
	ErrEmptyCorpus = errors.New("empty corpus")
)
