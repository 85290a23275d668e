package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSwipe(caller, target, idemKey string) *core.SwipeRecord {
	return &core.SwipeRecord{
		CallerId:       caller,
		TargetId:       target,
		Action:         core.SwipeIgnore,
		SourceQuery:    "find me a Python co-founder",
		IdempotencyKey: idemKey,
		Timestamp:      time.Now().UTC().Add(-time.Second),
	}
}

func TestSwipeQueue_AppendAndDrain(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := testSwipe("caller-1", fmt.Sprintf("cand-%d", i), fmt.Sprintf("idem-%d", i))
		require.NoError(t, repos.SwipeQueue.Append(ctx, rec))
	}

	length, err := repos.SwipeQueue.Len(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, 3, length)

	queued, err := repos.SwipeQueue.OldestN(ctx, "caller-1", 10)
	require.NoError(t, err)
	require.Len(t, queued, 3)

	// Oldest first
	assert.Equal(t, "cand-0", queued[0].Record.TargetId)
	assert.Equal(t, "cand-2", queued[2].Record.TargetId)

	// Removal by position
	require.NoError(t, repos.SwipeQueue.Remove(ctx, "caller-1", queued[0].Position))
	length, err = repos.SwipeQueue.Len(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, 2, length)

	assert.ErrorIs(t, repos.SwipeQueue.Remove(ctx, "caller-1", queued[0].Position), storage.ErrNotFound)
}

func TestSwipeQueue_BoundedEviction(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	queue, err := NewSwipeQueueRepositoryWithCapacity(backend, 3)
	require.NoError(t, err)
	defer queue.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		rec := testSwipe("caller-1", fmt.Sprintf("cand-%d", i), fmt.Sprintf("idem-%d", i))
		require.NoError(t, queue.Append(ctx, rec))
	}

	length, err := queue.Len(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, 3, length)

	// Oldest two were evicted
	queued, err := queue.OldestN(ctx, "caller-1", 10)
	require.NoError(t, err)
	require.Len(t, queued, 3)
	assert.Equal(t, "cand-2", queued[0].Record.TargetId)
	assert.Equal(t, "cand-4", queued[2].Record.TargetId)
}

func TestSwipeQueue_PerCallerIsolation(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.SwipeQueue.Append(ctx, testSwipe("caller-1", "cand-a", "k1")))
	require.NoError(t, repos.SwipeQueue.Append(ctx, testSwipe("caller-2", "cand-b", "k2")))

	length, err := repos.SwipeQueue.Len(ctx, "caller-1")
	require.NoError(t, err)
	assert.Equal(t, 1, length)

	queued, err := repos.SwipeQueue.OldestN(ctx, "caller-2", 10)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, "cand-b", queued[0].Record.TargetId)
}

func TestSwipeQueue_RejectsInvalidRecord(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	rec := testSwipe("caller-1", "", "k1")
	err = repos.SwipeQueue.Append(context.Background(), rec)
	assert.ErrorIs(t, err, core.ErrInvalidSwipeRecord)
}

func TestExclusionRepository_IdempotentAdd(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Exclusions.Add(ctx, "caller-1", "cand-1", "idem-1")
	require.NoError(t, err)
	assert.True(t, added)

	t.Run("same idempotency key is a no-op", func(t *testing.T) {
		added, err := repos.Exclusions.Add(ctx, "caller-1", "cand-1", "idem-1")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("distinct key, same candidate adds only once", func(t *testing.T) {
		added, err := repos.Exclusions.Add(ctx, "caller-1", "cand-1", "idem-2")
		require.NoError(t, err)
		assert.False(t, added)

		all, err := repos.Exclusions.All(ctx, "caller-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"cand-1"}, all)
	})

	t.Run("contains", func(t *testing.T) {
		found, err := repos.Exclusions.Contains(ctx, "caller-1", "cand-1")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = repos.Exclusions.Contains(ctx, "caller-1", "cand-2")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("callers are isolated", func(t *testing.T) {
		found, err := repos.Exclusions.Contains(ctx, "caller-2", "cand-1")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSessionRepository_PutGetDelete(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	t.Run("no session returns nil", func(t *testing.T) {
		session, err := repos.Sessions.GetSession(ctx, "caller-1")
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	session := &core.CardSession{
		CallerId:    "caller-1",
		CandidateId: "cand-1",
		SourceQuery: "python co-founder",
		SourceTier:  1,
		Position:    4,
	}
	require.NoError(t, repos.Sessions.PutSession(ctx, session))

	got, err := repos.Sessions.GetSession(ctx, "caller-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cand-1", got.CandidateId)
	assert.Equal(t, 1, got.SourceTier)
	assert.False(t, got.UpdatedAt.IsZero())

	t.Run("overwrite", func(t *testing.T) {
		session.CandidateId = "cand-2"
		require.NoError(t, repos.Sessions.PutSession(ctx, session))

		got, err := repos.Sessions.GetSession(ctx, "caller-1")
		require.NoError(t, err)
		assert.Equal(t, "cand-2", got.CandidateId)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repos.Sessions.DeleteSession(ctx, "caller-1"))
		got, err := repos.Sessions.GetSession(ctx, "caller-1")
		require.NoError(t, err)
		assert.Nil(t, got)

		// Deleting again is not an error
		require.NoError(t, repos.Sessions.DeleteSession(ctx, "caller-1"))
	})
}
