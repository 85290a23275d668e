package storage

import (
	"context"

	"github.com/foundrly/matchcore/core"
)

// ProfileRepository stores read-only projections of candidate profiles.
// The external profile store owns the authoritative records; this
// repository holds the engine's local copy used for scoring and indexing.
type ProfileRepository interface {
	// PutProfiles inserts or replaces candidate profiles.
	PutProfiles(ctx context.Context, profiles ...*core.CandidateProfile) error

	// GetProfile retrieves a single profile by candidate ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, candidateId string) (*core.CandidateProfile, error)

	// GetProfiles retrieves multiple profiles by candidate ID.
	// Returns only the profiles that exist (no error for missing ones).
	GetProfiles(ctx context.Context, candidateIds ...string) ([]*core.CandidateProfile, error)

	// IterateProfiles calls fn for each stored profile, in key order,
	// starting after the given candidate ID ("" starts from the beginning).
	// Iteration stops when fn returns false or an error.
	IterateProfiles(ctx context.Context, afterId string, fn func(*core.CandidateProfile) (bool, error)) error

	// DeleteProfile removes a profile. Returns ErrNotFound if it doesn't exist.
	DeleteProfile(ctx context.Context, candidateId string) error

	// Count returns the number of stored profiles.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}

// SwipeQueueRepository is the durable local queue behind the swipe ledger.
// Entries are ordered by insertion; the queue is bounded and evicts its
// oldest entry on overflow so a swipe never fails for lack of space.
type SwipeQueueRepository interface {
	// Append adds a record to the tail of the caller's queue. If the queue
	// is at capacity the oldest entry is evicted first.
	Append(ctx context.Context, record *core.SwipeRecord) error

	// OldestN returns up to n records from the head of the caller's queue,
	// oldest first, paired with their queue positions.
	OldestN(ctx context.Context, callerId string, n int) ([]QueuedSwipe, error)

	// Remove deletes the entry at the given queue position.
	// Returns ErrNotFound if no entry exists at that position.
	Remove(ctx context.Context, callerId string, position uint64) error

	// Len returns the number of queued records for the caller.
	Len(ctx context.Context, callerId string) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}

// QueuedSwipe pairs a queued record with its position in the queue.
type QueuedSwipe struct {
	Position uint64
	Record   *core.SwipeRecord
}

// ExclusionRepository maintains the per-caller set of candidate IDs that
// must never reappear in search results. The set only grows; pruning is a
// policy decision owned by the external ledger service.
type ExclusionRepository interface {
	// Add records that the caller must never see the candidate again.
	// The idempotency key deduplicates replays: a key seen before leaves
	// the set untouched and returns added=false.
	Add(ctx context.Context, callerId, candidateId, idempotencyKey string) (added bool, err error)

	// Contains reports whether the candidate is excluded for the caller.
	Contains(ctx context.Context, callerId, candidateId string) (bool, error)

	// All returns every excluded candidate ID for the caller.
	All(ctx context.Context, callerId string) ([]string, error)

	// Close closes the repository and releases resources.
	Close() error
}

// SessionRepository persists the single currently-displayed card per caller.
type SessionRepository interface {
	// PutSession overwrites the caller's card session.
	PutSession(ctx context.Context, session *core.CardSession) error

	// GetSession retrieves the caller's card session.
	// Returns nil, nil when no card is displayed.
	GetSession(ctx context.Context, callerId string) (*core.CardSession, error)

	// DeleteSession clears the caller's card session. Deleting a session
	// that doesn't exist is not an error.
	DeleteSession(ctx context.Context, callerId string) error

	// Close closes the repository and releases resources.
	Close() error
}

// CheckpointRepository persists resume points for batch processors.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
