package ledger

import "errors"

var (
	// ErrEmptyCallerId is returned when a ledger is created without a caller.
	ErrEmptyCallerId = errors.New("caller id required")

	// ErrExclusionsRequired is returned when no exclusion repository is provided.
	ErrExclusionsRequired = errors.New("exclusion repository required")

	// ErrQueueRequired is returned when no swipe queue repository is provided.
	ErrQueueRequired = errors.New("swipe queue repository required")

	// ErrRemoteRequired is returned when no remote store is provided.
	ErrRemoteRequired = errors.New("remote store required")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
