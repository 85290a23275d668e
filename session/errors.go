package session

import "errors"

var (
	// ErrEmptyCallerId is returned when a tracker is created without a caller.
	ErrEmptyCallerId = errors.New("caller id required")

	// ErrSessionsRequired is returned when no session repository is provided.
	ErrSessionsRequired = errors.New("session repository required")

	// ErrEmptyCandidateId is returned when Update is called without a candidate.
	ErrEmptyCandidateId = errors.New("candidate id required")
)
