package reindex

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrly/matchcore/ai/mock"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/index/memory"
	"github.com/foundrly/matchcore/storage/badger"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 100,
		MaxRetries:     2,
		RetryDelay:     0,
	}
}

func seedProfiles(t *testing.T, repos *badger.MemoryRepositories, n int) []*core.CandidateProfile {
	t.Helper()
	profiles := make([]*core.CandidateProfile, n)
	for i := range profiles {
		profiles[i] = &core.CandidateProfile{
			Id:           string(rune('a'+i)) + "-cand",
			Skills:       []string{"Go"},
			ResponseRate: core.ResponseRateUnknown,
		}
	}
	require.NoError(t, repos.Profiles.PutProfiles(context.Background(), profiles...))
	return profiles
}

func TestReindexerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds everything on first run, nothing on second", func(t *testing.T) {
		repos, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		t.Cleanup(repos.Close)
		seedProfiles(t, repos, 5)

		embedder := mock.NewMockEmbedder()
		indexer, err := index.NewIndexer(embedder, memory.NewStore())
		require.NoError(t, err)

		r, err := NewReindexer(repos.Profiles, indexer, repos.Checkpoints, testConfig(), io.Discard)
		require.NoError(t, err)

		stats, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, stats.Processed)
		assert.Equal(t, 5, stats.Reembedded)

		stats, err = r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, stats.Processed)
		assert.Zero(t, stats.Reembedded, "unchanged profiles must not be re-embedded")
	})

	t.Run("reembeds only changed profiles", func(t *testing.T) {
		repos, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		t.Cleanup(repos.Close)
		profiles := seedProfiles(t, repos, 3)

		indexer, err := index.NewIndexer(mock.NewMockEmbedder(), memory.NewStore())
		require.NoError(t, err)
		r, err := NewReindexer(repos.Profiles, indexer, repos.Checkpoints, testConfig(), io.Discard)
		require.NoError(t, err)

		_, err = r.Run(ctx)
		require.NoError(t, err)

		profiles[1].Skills = append(profiles[1].Skills, "Rust")
		require.NoError(t, repos.Profiles.PutProfiles(ctx, profiles[1]))

		stats, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Reembedded)
	})

	t.Run("empty store is a no-op", func(t *testing.T) {
		repos, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		t.Cleanup(repos.Close)

		indexer, err := index.NewIndexer(mock.NewMockEmbedder(), memory.NewStore())
		require.NoError(t, err)
		r, err := NewReindexer(repos.Profiles, indexer, repos.Checkpoints, testConfig(), io.Discard)
		require.NoError(t, err)

		stats, err := r.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Processed)
	})

	t.Run("completed run clears the checkpoint cursor", func(t *testing.T) {
		repos, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		t.Cleanup(repos.Close)
		seedProfiles(t, repos, 3)

		indexer, err := index.NewIndexer(mock.NewMockEmbedder(), memory.NewStore())
		require.NoError(t, err)
		r, err := NewReindexer(repos.Profiles, indexer, repos.Checkpoints, testConfig(), io.Discard)
		require.NoError(t, err)

		_, err = r.Run(ctx)
		require.NoError(t, err)

		checkpoint, err := repos.Checkpoints.LoadCheckpoint(ctx, checkpointType)
		require.NoError(t, err)
		require.NotNil(t, checkpoint)
		assert.Empty(t, checkpoint.Cursor)
	})
}

func TestProfileIterator(t *testing.T) {
	ctx := context.Background()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(repos.Close)
	seedProfiles(t, repos, 5)

	t.Run("visits every profile in batches", func(t *testing.T) {
		it := NewProfileIterator(repos.Profiles, 2)
		var seen []string
		var batches int
		err := it.ForEach(ctx, "", func(batch []*core.CandidateProfile) error {
			batches++
			for _, p := range batch {
				seen = append(seen, p.Id)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, seen, 5)
		assert.Equal(t, 3, batches)
	})

	t.Run("resumes after a cursor", func(t *testing.T) {
		it := NewProfileIterator(repos.Profiles, 10)
		var seen []string
		err := it.ForEach(ctx, "b-cand", func(batch []*core.CandidateProfile) error {
			for _, p := range batch {
				seen = append(seen, p.Id)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"c-cand", "d-cand", "e-cand"}, seen)
	})

	t.Run("cancelled context stops iteration", func(t *testing.T) {
		it := NewProfileIterator(repos.Profiles, 1)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := it.ForEach(cancelled, "", func([]*core.CandidateProfile) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
