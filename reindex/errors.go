package reindex

import "errors"

var (
	// ErrProfileRepositoryRequired is returned when no profile repository
	// is provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrIndexerRequired is returned when no indexer is provided.
	ErrIndexerRequired = errors.New("indexer required")

	// ErrCheckpointsRequired is returned when no checkpoint repository is
	// provided.
	ErrCheckpointsRequired = errors.New("checkpoint repository required")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
