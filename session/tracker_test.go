package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
	"github.com/foundrly/matchcore/storage/badger"
)

// countingSessions wraps a SessionRepository and counts writes.
type countingSessions struct {
	storage.SessionRepository
	puts int
}

func (c *countingSessions) PutSession(ctx context.Context, session *core.CardSession) error {
	c.puts++
	return c.SessionRepository.PutSession(ctx, session)
}

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *countingSessions) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(repos.Close)

	sessions := &countingSessions{SessionRepository: repos.Sessions}
	tracker, err := NewTracker("caller-1", sessions, opts...)
	require.NoError(t, err)
	return tracker, sessions
}

func TestTrackerUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("first update persists immediately", func(t *testing.T) {
		tracker, sessions := newTestTracker(t)

		require.NoError(t, tracker.Update(ctx, "cand-1", Context{SourceQuery: "python", Position: 1}))
		assert.Equal(t, 1, sessions.puts)

		card, err := tracker.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.Equal(t, "cand-1", card.CandidateId)
	})

	t.Run("two updates within the window coalesce to one write", func(t *testing.T) {
		tracker, sessions := newTestTracker(t)

		require.NoError(t, tracker.Update(ctx, "cand-1", Context{Position: 1}))
		require.NoError(t, tracker.Update(ctx, "cand-2", Context{Position: 2}))

		assert.Equal(t, 1, sessions.puts, "second update must skip the remote write")

		card, err := tracker.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.Equal(t, "cand-2", card.CandidateId, "in-memory state reflects the latest update")
		assert.Equal(t, 2, card.Position)
	})

	t.Run("flush persists the pending coalesced state", func(t *testing.T) {
		tracker, sessions := newTestTracker(t)

		require.NoError(t, tracker.Update(ctx, "cand-1", Context{}))
		require.NoError(t, tracker.Update(ctx, "cand-2", Context{}))
		require.NoError(t, tracker.Flush(ctx))
		assert.Equal(t, 2, sessions.puts)

		stored, err := sessions.GetSession(ctx, "caller-1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "cand-2", stored.CandidateId)
	})

	t.Run("flush without pending state is a no-op", func(t *testing.T) {
		tracker, sessions := newTestTracker(t)

		require.NoError(t, tracker.Update(ctx, "cand-1", Context{}))
		require.NoError(t, tracker.Flush(ctx))
		assert.Equal(t, 1, sessions.puts)
	})

	t.Run("next allowed update persists the newest state", func(t *testing.T) {
		tracker, sessions := newTestTracker(t, WithThrottleWindow(30*time.Millisecond))

		require.NoError(t, tracker.Update(ctx, "cand-1", Context{}))
		require.NoError(t, tracker.Update(ctx, "cand-2", Context{}))
		assert.Equal(t, 1, sessions.puts)

		time.Sleep(40 * time.Millisecond)
		require.NoError(t, tracker.Update(ctx, "cand-3", Context{}))
		assert.Equal(t, 2, sessions.puts)

		stored, err := sessions.GetSession(ctx, "caller-1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "cand-3", stored.CandidateId)
	})

	t.Run("rejects empty candidate id", func(t *testing.T) {
		tracker, _ := newTestTracker(t)
		assert.ErrorIs(t, tracker.Update(ctx, "", Context{}), ErrEmptyCandidateId)
	})
}

func TestTrackerGetAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("no card returns nil", func(t *testing.T) {
		tracker, _ := newTestTracker(t)
		card, err := tracker.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, card)
	})

	t.Run("clear removes current and stored state", func(t *testing.T) {
		tracker, sessions := newTestTracker(t)

		require.NoError(t, tracker.Update(ctx, "cand-1", Context{}))
		require.NoError(t, tracker.Clear(ctx))

		card, err := tracker.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, card)

		stored, err := sessions.GetSession(ctx, "caller-1")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestNewTrackerValidation(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewTracker("", repos.Sessions)
	assert.ErrorIs(t, err, ErrEmptyCallerId)

	_, err = NewTracker("caller-1", nil)
	assert.ErrorIs(t, err, ErrSessionsRequired)
}
