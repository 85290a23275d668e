package score

import "errors"

var (
	// ErrInvalidWeights is returned for weight tables that are negative,
	// incomplete, or do not sum to 1.0.
	ErrInvalidWeights = errors.New("invalid score weights")

	// ErrPoolRequired is returned when batch scoring cannot build its
	// worker pool.
	ErrPoolRequired = errors.New("worker pool required")
)
