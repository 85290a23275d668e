package matchcore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/ai/mock"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index/memory"
	"github.com/foundrly/matchcore/intent"
	"github.com/foundrly/matchcore/session"
)

// fakeRemote is a switchable in-memory ledger service.
type fakeRemote struct {
	mu       sync.Mutex
	failing  bool
	received []*core.SwipeRecord
}

func (f *fakeRemote) Put(ctx context.Context, record *core.SwipeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return assert.AnError
	}
	f.received = append(f.received, record)
	return nil
}

func (f *fakeRemote) PutBatch(ctx context.Context, records []*core.SwipeRecord) error {
	for _, r := range records {
		if err := f.Put(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRemote) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received)
}

// cofounderExtractor pins the parsed intent so retrieval behavior is
// deterministic regardless of the mock's keyword defaults.
func cofounderExtractor() *mock.MockIntentExtractor {
	extractor := mock.NewMockIntentExtractor()
	extractor.ExtractIntentFunc = func(ctx context.Context, query string, caller ai.CallerContext) (*ai.ExtractedIntent, error) {
		return &ai.ExtractedIntent{
			RequiredSkills: []string{"python"},
			Collaboration:  "co-founder",
			LocationHint:   "Beijing",
		}, nil
	}
	return extractor
}

func newTestEngine(t *testing.T, remote *fakeRemote) *Engine {
	t.Helper()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), cofounderExtractor())
	opts := []EngineOption{WithInMemoryStorage(), WithAIProvider(provider)}
	if remote != nil {
		opts = append(opts, WithRemoteStore(remote))
	}
	engine, err := NewEngine("", memory.NewStore(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func callerProfile() *core.CandidateProfile {
	return &core.CandidateProfile{
		Id:           "caller-1",
		Name:         "Wei",
		Skills:       []string{"Go", "Python"},
		Goals:        []string{"build a machine learning startup"},
		Location:     "Beijing",
		Institutions: []string{"Tsinghua"},
		ResponseRate: core.ResponseRateUnknown,
	}
}

func seedCandidates(t *testing.T, engine *Engine) {
	t.Helper()
	pipeline, err := engine.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	err = pipeline.Ingest(context.Background(),
		callerProfile(),
		&core.CandidateProfile{
			Id:                "alice",
			Name:              "Alice",
			Skills:            []string{"Python", "Machine Learning"},
			Goals:             []string{"build a machine learning startup"},
			Location:          "Beijing",
			Institutions:      []string{"Tsinghua"},
			MutualConnections: 4,
			ResponseRate:      90,
			Online:            true,
		},
		&core.CandidateProfile{
			Id:           "bob",
			Name:         "Bob",
			Skills:       []string{"Rust", "Embedded"},
			Goals:        []string{"contribute to open source"},
			Location:     "Berlin",
			ResponseRate: core.ResponseRateUnknown,
		},
	)
	require.NoError(t, err)
	pipeline.Wait()
}

func TestEngineSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline ranks the matching candidate first", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		seedCandidates(t, engine)

		resp, err := engine.Search(ctx, &SearchRequest{
			RawQuery:      "Looking for a Python co-founder in Beijing",
			CallerProfile: callerProfile(),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Intent)
		assert.Equal(t, core.CollaborationCoFounder, resp.Intent.Collaboration)

		require.NotEmpty(t, resp.Candidates)
		top := resp.Candidates[0]
		assert.Equal(t, "alice", top.Profile.Id)
		assert.Zero(t, top.Tier, "alice satisfies every hard constraint")
		assert.Equal(t, 100, top.Score.Location)
		assert.GreaterOrEqual(t, top.Score.Skills, 50)
		assert.GreaterOrEqual(t, top.Score.Overall, 60)
		assert.NotEmpty(t, top.Explanation)
	})

	t.Run("caller never surfaces in their own results", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		seedCandidates(t, engine)

		resp, err := engine.Search(ctx, &SearchRequest{
			RawQuery:      "Python co-founder",
			CallerProfile: callerProfile(),
		})
		require.NoError(t, err)
		for _, c := range resp.Candidates {
			assert.NotEqual(t, "caller-1", c.Profile.Id)
		}
	})

	t.Run("non-matching candidates surface via relaxation at a later tier", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		seedCandidates(t, engine)

		resp, err := engine.Search(ctx, &SearchRequest{
			RawQuery:      "Python co-founder in Beijing",
			CallerProfile: callerProfile(),
		})
		require.NoError(t, err)

		tiers := make(map[string]int)
		for _, c := range resp.Candidates {
			tiers[c.Profile.Id] = c.Tier
		}
		require.Contains(t, tiers, "bob")
		assert.Equal(t, 3, tiers["bob"], "bob lacks python and only matches on pure similarity")
	})

	t.Run("swiped candidates are excluded from later searches", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		seedCandidates(t, engine)

		resp, err := engine.Swipe(ctx, &SwipeRequest{
			CallerId: "caller-1",
			TargetId: "alice",
			Action:   "like",
		})
		require.NoError(t, err)
		assert.True(t, resp.Accepted)

		searchResp, err := engine.Search(ctx, &SearchRequest{
			RawQuery:      "Python co-founder in Beijing",
			CallerProfile: callerProfile(),
		})
		require.NoError(t, err)
		for _, c := range searchResp.Candidates {
			assert.NotEqual(t, "alice", c.Profile.Id)
		}
	})

	t.Run("empty query fails", func(t *testing.T) {
		engine := newTestEngine(t, nil)

		_, err := engine.Search(ctx, &SearchRequest{RawQuery: "   "})
		assert.ErrorIs(t, err, intent.ErrEmptyQuery)
	})

	t.Run("nil caller profile still searches", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		seedCandidates(t, engine)

		resp, err := engine.Search(ctx, &SearchRequest{
			RawQuery: "Python co-founder in Beijing",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Candidates)
	})
}

func TestEngineSwipe(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to the remote store", func(t *testing.T) {
		remote := &fakeRemote{}
		engine := newTestEngine(t, remote)

		resp, err := engine.Swipe(ctx, &SwipeRequest{
			CallerId:    "caller-1",
			TargetId:    "alice",
			Action:      "super_like",
			SourceQuery: "Python co-founder",
			SourceTier:  0,
		})
		require.NoError(t, err)
		assert.True(t, resp.Accepted)
		assert.Equal(t, 1, remote.count())
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		engine := newTestEngine(t, nil)

		_, err := engine.Swipe(ctx, &SwipeRequest{
			CallerId: "caller-1",
			TargetId: "alice",
			Action:   "maybe",
		})
		assert.ErrorIs(t, err, core.ErrInvalidSwipeAction)
	})

	t.Run("batch records every swipe", func(t *testing.T) {
		remote := &fakeRemote{}
		engine := newTestEngine(t, remote)

		resp, err := engine.SwipeBatch(ctx, []*SwipeRequest{
			{CallerId: "caller-1", TargetId: "alice", Action: "like"},
			{CallerId: "caller-1", TargetId: "bob", Action: "ignore"},
		})
		require.NoError(t, err)
		assert.True(t, resp.Accepted)
		assert.Equal(t, 2, remote.count())
	})

	t.Run("remote outage queues locally and sync drains", func(t *testing.T) {
		remote := &fakeRemote{}
		remote.setFailing(true)
		engine := newTestEngine(t, remote)

		resp, err := engine.Swipe(ctx, &SwipeRequest{
			CallerId: "caller-1",
			TargetId: "alice",
			Action:   "like",
		})
		require.NoError(t, err, "remote failure must not surface to the caller")
		assert.True(t, resp.Accepted)
		assert.Zero(t, remote.count())

		remote.setFailing(false)
		require.NoError(t, engine.SyncSwipes(ctx, "caller-1"))
		assert.Equal(t, 1, remote.count())
	})
}

func TestEngineCardSession(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, nil)

	t.Run("update and get round-trip", func(t *testing.T) {
		err := engine.UpdateCard(ctx, "caller-1", "alice", session.Context{
			SourceQuery: "Python co-founder",
			SourceTier:  0,
			Position:    2,
		})
		require.NoError(t, err)

		card, err := engine.GetCard(ctx, "caller-1")
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.Equal(t, "alice", card.CandidateId)
		assert.Equal(t, 2, card.Position)
	})

	t.Run("clear removes the card", func(t *testing.T) {
		require.NoError(t, engine.ClearCard(ctx, "caller-1"))

		card, err := engine.GetCard(ctx, "caller-1")
		require.NoError(t, err)
		assert.Nil(t, card)
	})
}

func TestNewEngine(t *testing.T) {
	t.Run("requires a vector index", func(t *testing.T) {
		_, err := NewEngine("", nil, WithInMemoryStorage())
		assert.Error(t, err)
	})
}
