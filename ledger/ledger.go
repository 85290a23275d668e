// Copyright 2025 Foundrly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
)

// Defaults for remote delivery.
const (
	DefaultRemoteTimeout = 2 * time.Second
	DefaultSyncBatchSize = 16
	DefaultMaxAttempts   = 3
	DefaultBaseDelay     = 200 * time.Millisecond
)

// Ledger records one caller's swipe decisions. Create one per caller
// session; Record and Sync are safe to call concurrently from that
// session's goroutines.
type Ledger struct {
	callerId   string
	exclusions storage.ExclusionRepository
	queue      storage.SwipeQueueRepository
	remote     RemoteStore

	mu            sync.Mutex
	remoteTimeout time.Duration
	batchSize     int
	maxAttempts   int
	baseDelay     time.Duration
	logger        *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRemoteTimeout bounds the synchronous remote write inside Record.
func WithRemoteTimeout(timeout time.Duration) Option {
	return func(l *Ledger) {
		if timeout > 0 {
			l.remoteTimeout = timeout
		}
	}
}

// WithRetry tunes Sync's per-entry retry policy.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(l *Ledger) {
		if maxAttempts > 0 {
			l.maxAttempts = maxAttempts
		}
		if baseDelay > 0 {
			l.baseDelay = baseDelay
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLedger creates a swipe ledger for one caller session.
func NewLedger(
	callerId string,
	exclusions storage.ExclusionRepository,
	queue storage.SwipeQueueRepository,
	remote RemoteStore,
	opts ...Option,
) (*Ledger, error) {
	if callerId == "" {
		return nil, ErrEmptyCallerId
	}
	if exclusions == nil {
		return nil, ErrExclusionsRequired
	}
	if queue == nil {
		return nil, ErrQueueRequired
	}
	if remote == nil {
		return nil, ErrRemoteRequired
	}

	l := &Ledger{
		callerId:      callerId,
		exclusions:    exclusions,
		queue:         queue,
		remote:        remote,
		remoteTimeout: DefaultRemoteTimeout,
		batchSize:     DefaultSyncBatchSize,
		maxAttempts:   DefaultMaxAttempts,
		baseDelay:     DefaultBaseDelay,
		logger:        slog.Default().With("component", "ledger", "caller", callerId),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Record accepts a swipe decision. Validation failure is the only error a
// caller sees; everything downstream degrades. The exclusion is applied
// locally first (keyed by the record's idempotency key, so replays don't
// re-add), then the record is pushed to the remote store under a short
// deadline. If the remote write fails the record is parked in the durable
// local queue and Record still reports success.
func (l *Ledger) Record(ctx context.Context, record *core.SwipeRecord) error {
	if record == nil {
		return core.ErrInvalidSwipeRecord
	}
	if record.CallerId == "" {
		record.CallerId = l.callerId
	}
	if record.IdempotencyKey == "" {
		record.IdempotencyKey = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	record.InsertedAt = time.Now().UTC()
	record.Id = core.IDFromContent(record.CallerId + "/" + record.IdempotencyKey)

	if err := core.ValidateSwipeRecord(record); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	added, err := l.exclusions.Add(ctx, record.CallerId, record.TargetId, record.IdempotencyKey)
	if err != nil {
		return fmt.Errorf("applying exclusion: %w", err)
	}
	if !added {
		l.logger.Debug("idempotency key replay, exclusion unchanged",
			"target", record.TargetId, "key", record.IdempotencyKey)
	}

	remoteCtx, cancel := context.WithTimeout(ctx, l.remoteTimeout)
	defer cancel()
	if err := l.remote.Put(remoteCtx, record); err != nil {
		l.logger.Warn("remote write failed, queuing locally",
			"target", record.TargetId, "error", err)
		if qErr := l.queue.Append(ctx, record); qErr != nil {
			// Both paths down. The exclusion already took effect, so
			// the caller still must not see this candidate again.
			l.logger.Error("local queue append failed, swipe not durable",
				"target", record.TargetId, "error", qErr)
		}
	}
	return nil
}

// Sync drains the local queue oldest-first. Each entry is retried with
// exponential backoff and removed only after a confirmed remote ack; a
// still-failing entry stays queued and ends the drain.
func (l *Ledger) Sync(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		batch, err := l.queue.OldestN(ctx, l.callerId, l.batchSize)
		if err != nil {
			return fmt.Errorf("reading swipe queue: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}

		for _, entry := range batch {
			record := entry.Record
			err := RetryWithBackoff(ctx, func() error {
				putCtx, cancel := context.WithTimeout(ctx, l.remoteTimeout)
				defer cancel()
				return l.remote.Put(putCtx, record)
			}, l.maxAttempts, l.baseDelay)
			if err != nil {
				return fmt.Errorf("syncing swipe %s: %w", record.IdempotencyKey, err)
			}
			if err := l.queue.Remove(ctx, l.callerId, entry.Position); err != nil {
				return fmt.Errorf("removing confirmed swipe: %w", err)
			}
			l.logger.Debug("swipe confirmed remotely", "target", record.TargetId)
		}
	}
}

// Pending returns the number of swipes still waiting for remote delivery.
func (l *Ledger) Pending(ctx context.Context) (int, error) {
	return l.queue.Len(ctx, l.callerId)
}

// Excluded reports whether the candidate is already excluded for this
// caller.
func (l *Ledger) Excluded(ctx context.Context, candidateId string) (bool, error) {
	return l.exclusions.Contains(ctx, l.callerId, candidateId)
}

// Exclusions returns the caller's full exclusion set.
func (l *Ledger) Exclusions(ctx context.Context) ([]string, error) {
	return l.exclusions.All(ctx, l.callerId)
}
