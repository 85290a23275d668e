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


package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
)

// DefaultThrottleWindow is the minimum interval between persisted card
// updates for one caller.
const DefaultThrottleWindow = time.Second

// Context carries the provenance of the displayed card.
type Context struct {
	SourceQuery string
	SourceTier  int
	Position    int
}

// Tracker tracks one caller's displayed card. Safe for concurrent use by
// that caller's goroutines.
type Tracker struct {
	callerId string
	sessions storage.SessionRepository
	limiter  *rate.Limiter
	logger   *slog.Logger

	mu      sync.Mutex
	current *core.CardSession // newest state, may be ahead of the store
	pending bool              // current has not been persisted yet
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithThrottleWindow overrides the persisted-write interval.
func WithThrottleWindow(window time.Duration) Option {
	return func(t *Tracker) {
		if window > 0 {
			t.limiter = rate.NewLimiter(rate.Every(window), 1)
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTracker creates a card-session tracker for one caller.
func NewTracker(callerId string, sessions storage.SessionRepository, opts ...Option) (*Tracker, error) {
	if callerId == "" {
		return nil, ErrEmptyCallerId
	}
	if sessions == nil {
		return nil, ErrSessionsRequired
	}
	t := &Tracker{
		callerId: callerId,
		sessions: sessions,
		limiter:  rate.NewLimiter(rate.Every(DefaultThrottleWindow), 1),
		logger:   slog.Default().With("component", "session", "caller", callerId),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Update records the newly displayed card. The in-memory state always
// takes the update; the persisted write is skipped when a write already
// happened inside the throttle window, leaving the newest state pending
// until the next allowed update or Flush.
func (t *Tracker) Update(ctx context.Context, candidateId string, card Context) error {
	if candidateId == "" {
		return ErrEmptyCandidateId
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = &core.CardSession{
		CallerId:    t.callerId,
		CandidateId: candidateId,
		SourceQuery: card.SourceQuery,
		SourceTier:  card.SourceTier,
		Position:    card.Position,
		UpdatedAt:   time.Now().UTC(),
	}

	if !t.limiter.Allow() {
		t.pending = true
		t.logger.Debug("update coalesced within throttle window", "candidate", candidateId)
		return nil
	}
	return t.persistLocked(ctx)
}

// Get returns the caller's current card, or nil when no card is displayed.
// Reflects coalesced updates that have not been persisted yet.
func (t *Tracker) Get(ctx context.Context) (*core.CardSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return t.current, nil
	}
	return t.sessions.GetSession(ctx, t.callerId)
}

// Flush persists a pending coalesced state, if any.
func (t *Tracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.pending || t.current == nil {
		return nil
	}
	return t.persistLocked(ctx)
}

// Clear removes the caller's card state, bypassing the throttle: clearing
// is rare and must not leave a stale card behind.
func (t *Tracker) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = nil
	t.pending = false
	if err := t.sessions.DeleteSession(ctx, t.callerId); err != nil {
		return fmt.Errorf("clearing card session: %w", err)
	}
	return nil
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	if err := t.sessions.PutSession(ctx, t.current); err != nil {
		// Keep the state pending so a later update or Flush retries.
		t.pending = true
		return fmt.Errorf("persisting card session: %w", err)
	}
	t.pending = false
	return nil
}
