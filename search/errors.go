package search

import "errors"

var (
	// ErrIndexUnavailable is returned when the vector index failed before
	// any tier produced results. The condition is transient; callers
	// should retry.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrIndexRequired is returned when no vector index is provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrProfileRepositoryRequired is returned when no profile repository
	// is provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrIntentRequired is returned when Search is called with a nil intent.
	ErrIntentRequired = errors.New("search intent required")
)
