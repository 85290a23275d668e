package ingest

import "errors"

var (
	// ErrProfileRepositoryRequired is returned when no profile repository
	// is provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrIndexerRequired is returned when no indexer is provided.
	ErrIndexerRequired = errors.New("indexer required")
)
