package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage/badger"
)

// fakeRemote records deliveries and can be switched to fail.
type fakeRemote struct {
	mu      sync.Mutex
	records []*core.SwipeRecord
	failing bool
}

func (r *fakeRemote) Put(ctx context.Context, record *core.SwipeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("remote unavailable")
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeRemote) PutBatch(ctx context.Context, records []*core.SwipeRecord) error {
	for _, rec := range records {
		if err := r.Put(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRemote) setFailing(failing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing = failing
}

func (r *fakeRemote) received() []*core.SwipeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*core.SwipeRecord{}, r.records...)
}

func newTestLedger(t *testing.T) (*Ledger, *fakeRemote, *badger.MemoryRepositories) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(repos.Close)

	remote := &fakeRemote{}
	l, err := NewLedger("caller-1", repos.Exclusions, repos.SwipeQueue, remote,
		WithRetry(2, time.Millisecond),
		WithRemoteTimeout(time.Second),
	)
	require.NoError(t, err)
	return l, remote, repos
}

func swipe(target, key string, action core.SwipeAction) *core.SwipeRecord {
	return &core.SwipeRecord{
		TargetId:       target,
		Action:         action,
		IdempotencyKey: key,
		SourceQuery:    "python co-founder",
		SourceTier:     0,
		CardPosition:   1,
	}
}

func TestLedgerRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers remotely and applies exclusion", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)

		require.NoError(t, l.Record(ctx, swipe("cand-1", "key-1", core.SwipeLike)))

		assert.Len(t, remote.received(), 1)
		pending, err := l.Pending(ctx)
		require.NoError(t, err)
		assert.Zero(t, pending)

		excluded, err := l.Excluded(ctx, "cand-1")
		require.NoError(t, err)
		assert.True(t, excluded)
	})

	t.Run("remote failure queues locally and still succeeds", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)
		remote.setFailing(true)

		require.NoError(t, l.Record(ctx, swipe("cand-1", "key-1", core.SwipeIgnore)))

		pending, err := l.Pending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, pending)

		excluded, err := l.Excluded(ctx, "cand-1")
		require.NoError(t, err)
		assert.True(t, excluded, "exclusion applies even when remote is down")
	})

	t.Run("replayed idempotency key adds exclusion once", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)

		require.NoError(t, l.Record(ctx, swipe("cand-1", "key-1", core.SwipeLike)))
		require.NoError(t, l.Record(ctx, swipe("cand-1", "key-1", core.SwipeLike)))

		exclusions, err := l.Exclusions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"cand-1"}, exclusions)
		assert.Len(t, remote.received(), 2, "ledger entries are not deduplicated")
	})

	t.Run("distinct keys for the same candidate exclude once", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)

		require.NoError(t, l.Record(ctx, swipe("cand-x", "key-1", core.SwipeIgnore)))
		require.NoError(t, l.Record(ctx, swipe("cand-x", "key-2", core.SwipeIgnore)))

		exclusions, err := l.Exclusions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"cand-x"}, exclusions)
		assert.Len(t, remote.received(), 2)
	})

	t.Run("missing idempotency key gets generated", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		rec := swipe("cand-1", "", core.SwipeLike)
		require.NoError(t, l.Record(ctx, rec))
		assert.NotEmpty(t, rec.IdempotencyKey)
	})

	t.Run("validation failure is surfaced synchronously", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)

		err := l.Record(ctx, swipe("", "key-1", core.SwipeLike))
		assert.ErrorIs(t, err, core.ErrEmptyTargetId)

		err = l.Record(ctx, swipe("cand-1", "key-2", core.SwipeAction(99)))
		assert.ErrorIs(t, err, core.ErrInvalidSwipeAction)

		assert.Empty(t, remote.received())
	})
}

func TestLedgerSync(t *testing.T) {
	ctx := context.Background()

	t.Run("drains queue oldest first after remote recovers", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)
		remote.setFailing(true)

		require.NoError(t, l.Record(ctx, swipe("cand-1", "key-1", core.SwipeLike)))
		require.NoError(t, l.Record(ctx, swipe("cand-2", "key-2", core.SwipeIgnore)))

		remote.setFailing(false)
		require.NoError(t, l.Sync(ctx))

		pending, err := l.Pending(ctx)
		require.NoError(t, err)
		assert.Zero(t, pending)

		received := remote.received()
		require.Len(t, received, 2)
		assert.Equal(t, "cand-1", received[0].TargetId)
		assert.Equal(t, "cand-2", received[1].TargetId)
	})

	t.Run("entries stay queued while remote keeps failing", func(t *testing.T) {
		l, remote, _ := newTestLedger(t)
		remote.setFailing(true)

		require.NoError(t, l.Record(ctx, swipe("cand-1", "key-1", core.SwipeLike)))
		require.Error(t, l.Sync(ctx))

		pending, err := l.Pending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, pending)
	})

	t.Run("empty queue sync is a no-op", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		assert.NoError(t, l.Sync(ctx))
	})
}

func TestNewLedgerValidation(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	remote := &fakeRemote{}

	_, err = NewLedger("", repos.Exclusions, repos.SwipeQueue, remote)
	assert.ErrorIs(t, err, ErrEmptyCallerId)

	_, err = NewLedger("c", nil, repos.SwipeQueue, remote)
	assert.ErrorIs(t, err, ErrExclusionsRequired)

	_, err = NewLedger("c", repos.Exclusions, nil, remote)
	assert.ErrorIs(t, err, ErrQueueRequired)

	_, err = NewLedger("c", repos.Exclusions, repos.SwipeQueue, nil)
	assert.ErrorIs(t, err, ErrRemoteRequired)
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := RetryWithBackoff(ctx, func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		wantErr := errors.New("permanent")
		err := RetryWithBackoff(ctx, func() error { return wantErr }, 2, time.Millisecond)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("rejects non-positive attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("respects cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoff(cancelled, func() error { return errors.New("x") }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
