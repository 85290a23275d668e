package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrly/matchcore/ai/mock"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/index/memory"
	"github.com/foundrly/matchcore/search"
	"github.com/foundrly/matchcore/storage/badger"
)

type fixture struct {
	repos        *badger.MemoryRepositories
	store        index.VectorIndex
	orchestrator *search.Orchestrator
}

// flakyIndex delegates to an inner index but fails Search after a set
// number of successful calls.
type flakyIndex struct {
	index.VectorIndex
	failAfter int
	calls     int
}

func (f *flakyIndex) Search(ctx context.Context, query index.Query) ([]index.Hit, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, errors.New("index down")
	}
	return f.VectorIndex.Search(ctx, query)
}

func newFixture(t *testing.T, store index.VectorIndex, profiles ...*core.CandidateProfile) *fixture {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(repos.Close)

	ctx := context.Background()
	require.NoError(t, repos.Profiles.PutProfiles(ctx, profiles...))

	embedder := mock.NewMockEmbedder()
	if store == nil {
		store = memory.NewStore()
	}
	indexer, err := index.NewIndexer(embedder, store)
	require.NoError(t, err)
	_, err = indexer.IndexProfiles(ctx, profiles)
	require.NoError(t, err)

	orchestrator, err := search.NewOrchestrator(repos.Profiles, store, embedder)
	require.NoError(t, err)

	return &fixture{repos: repos, store: store, orchestrator: orchestrator}
}

func candidate(id, location string, skills ...string) *core.CandidateProfile {
	return &core.CandidateProfile{
		Id:           id,
		Skills:       skills,
		Location:     location,
		ResponseRate: core.ResponseRateUnknown,
	}
}

func TestOrchestratorSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("tier 0 surfaces hard-filtered candidate", func(t *testing.T) {
		f := newFixture(t, nil,
			candidate("match", "Beijing", "Python", "TensorFlow"),
			candidate("wrong-city", "Shanghai", "Python"),
			candidate("wrong-skill", "Beijing", "Figma"),
		)

		intent := &core.SearchIntent{
			RequiredSkills: []string{"python"},
			Collaboration:  core.CollaborationCoFounder,
			LocationHint:   "Beijing",
			RawQuery:       "find me a Python co-founder",
		}
		results, err := f.orchestrator.Search(ctx, intent, &search.Options{MinResults: 1, MaxTiers: 1})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "match", results[0].Profile.Id)
		assert.Equal(t, 0, results[0].Tier)
	})

	t.Run("never returns excluded candidates", func(t *testing.T) {
		f := newFixture(t, nil,
			candidate("a", "Beijing", "Python"),
			candidate("b", "Beijing", "Python"),
		)

		intent := &core.SearchIntent{RequiredSkills: []string{"python"}, RawQuery: "python person"}
		results, err := f.orchestrator.Search(ctx, intent, &search.Options{ExcludeIds: []string{"a"}})
		require.NoError(t, err)
		for _, r := range results {
			assert.NotEqual(t, "a", r.Profile.Id)
		}
	})

	t.Run("escalates past empty tier 0", func(t *testing.T) {
		f := newFixture(t, nil,
			candidate("remote", "Lisbon", "Python"),
		)

		intent := &core.SearchIntent{
			RequiredSkills: []string{"python"},
			LocationHint:   "Beijing",
			RawQuery:       "python co-founder in Beijing",
		}
		results, err := f.orchestrator.Search(ctx, intent, &search.Options{MinResults: 1})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "remote", results[0].Profile.Id)
		assert.Equal(t, 1, results[0].Tier, "location must be dropped at tier 1")
	})

	t.Run("relaxes skills at tier 2 and beyond", func(t *testing.T) {
		f := newFixture(t, nil,
			candidate("partial", "Berlin", "Python"),
		)

		intent := &core.SearchIntent{
			RequiredSkills: []string{"python", "kubernetes"},
			RawQuery:       "python and kubernetes",
		}
		results, err := f.orchestrator.Search(ctx, intent, &search.Options{MinResults: 1})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "partial", results[0].Profile.Id)
		assert.Equal(t, 2, results[0].Tier)
	})

	t.Run("first tier wins on duplicates", func(t *testing.T) {
		f := newFixture(t, nil,
			candidate("everywhere", "Beijing", "Python"),
		)

		intent := &core.SearchIntent{
			RequiredSkills: []string{"python"},
			LocationHint:   "Beijing",
			RawQuery:       "python",
		}
		// MinResults higher than the corpus forces every tier to run.
		results, err := f.orchestrator.Search(ctx, intent, &search.Options{MinResults: 10})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 0, results[0].Tier)
	})

	t.Run("index failure before any hits", func(t *testing.T) {
		f := newFixture(t, &flakyIndex{VectorIndex: memory.NewStore(), failAfter: 0},
			candidate("a", "Beijing", "Python"),
		)

		_, err := f.orchestrator.Search(ctx, &core.SearchIntent{RawQuery: "python"}, nil)
		assert.ErrorIs(t, err, search.ErrIndexUnavailable)
	})

	t.Run("partial results when index fails mid-escalation", func(t *testing.T) {
		flaky := &flakyIndex{VectorIndex: memory.NewStore(), failAfter: 1}
		f := newFixture(t, flaky,
			candidate("early", "Beijing", "Python"),
		)

		intent := &core.SearchIntent{
			RequiredSkills: []string{"python"},
			LocationHint:   "Beijing",
			RawQuery:       "python",
		}
		results, err := f.orchestrator.Search(ctx, intent, &search.Options{MinResults: 10})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "early", results[0].Profile.Id)
	})

	t.Run("cancelled context stops at tier boundary", func(t *testing.T) {
		f := newFixture(t, nil, candidate("a", "Beijing", "Python"))

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.orchestrator.Search(cancelled, &core.SearchIntent{RawQuery: "python"}, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil intent rejected", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.orchestrator.Search(ctx, nil, nil)
		assert.ErrorIs(t, err, search.ErrIntentRequired)
	})
}

func TestOrchestratorMonitor(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, nil,
		candidate("match", "Beijing", "Python"),
	)

	monitor := &recordingMonitor{}
	intent := &core.SearchIntent{
		RequiredSkills: []string{"python"},
		LocationHint:   "Beijing",
		RawQuery:       "python",
	}
	results, err := f.orchestrator.SearchWithMonitor(ctx, intent, &search.Options{MinResults: 1}, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, monitor.started)
	assert.Contains(t, monitor.tiersRun, 0)
	assert.True(t, monitor.finished)
}

type recordingMonitor struct {
	started  bool
	tiersRun []int
	finished bool
}

func (m *recordingMonitor) Start(_ *core.SearchIntent)       { m.started = true }
func (m *recordingMonitor) TierStart(tier int)               { m.tiersRun = append(m.tiersRun, tier) }
func (m *recordingMonitor) AfterTier(_ int, _ []index.Hit)   {}
func (m *recordingMonitor) DuplicateHit(_ int, _ string)     {}
func (m *recordingMonitor) TierFailed(_ int, _ error)        {}
func (m *recordingMonitor) Finish(_ []*core.RankedCandidate) { m.finished = true }
