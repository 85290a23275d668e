package badger

import (
	"context"
	"testing"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(id string) *core.CandidateProfile {
	return &core.CandidateProfile{
		Id:           id,
		Name:         "Test " + id,
		Skills:       []string{"Python", "ML"},
		Goals:        []string{"build a startup"},
		Location:     "Beijing",
		ResponseRate: 80,
	}
}

func TestProfileRepository_PutAndGet(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	profile := testProfile("cand-1")
	require.NoError(t, repos.Profiles.PutProfiles(ctx, profile))

	got, err := repos.Profiles.GetProfile(ctx, "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "cand-1", got.Id)
	assert.Equal(t, []string{"Python", "ML"}, got.Skills)
	assert.False(t, got.UpdatedAt.IsZero())

	t.Run("missing profile", func(t *testing.T) {
		_, err := repos.Profiles.GetProfile(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid profile rejected", func(t *testing.T) {
		err := repos.Profiles.PutProfiles(ctx, &core.CandidateProfile{})
		assert.ErrorIs(t, err, core.ErrInvalidProfile)
	})

	t.Run("put replaces", func(t *testing.T) {
		edited := testProfile("cand-1")
		edited.Skills = []string{"Rust"}
		require.NoError(t, repos.Profiles.PutProfiles(ctx, edited))

		got, err := repos.Profiles.GetProfile(ctx, "cand-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rust"}, got.Skills)
	})
}

func TestProfileRepository_GetProfiles(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.Profiles.PutProfiles(ctx,
		testProfile("cand-1"), testProfile("cand-2"), testProfile("cand-3")))

	// Missing IDs are skipped, not errors
	got, err := repos.Profiles.GetProfiles(ctx, "cand-1", "missing", "cand-3")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProfileRepository_Iterate(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.Profiles.PutProfiles(ctx,
		testProfile("a"), testProfile("b"), testProfile("c")))

	var seen []string
	err = repos.Profiles.IterateProfiles(ctx, "", func(p *core.CandidateProfile) (bool, error) {
		seen = append(seen, p.Id)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)

	t.Run("resume after id", func(t *testing.T) {
		var resumed []string
		err := repos.Profiles.IterateProfiles(ctx, "a", func(p *core.CandidateProfile) (bool, error) {
			resumed = append(resumed, p.Id)
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, resumed)
	})

	t.Run("early stop", func(t *testing.T) {
		count := 0
		err := repos.Profiles.IterateProfiles(ctx, "", func(p *core.CandidateProfile) (bool, error) {
			count++
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestProfileRepository_DeleteAndCount(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	require.NoError(t, repos.Profiles.PutProfiles(ctx, testProfile("cand-1"), testProfile("cand-2")))

	count, err := repos.Profiles.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repos.Profiles.DeleteProfile(ctx, "cand-1"))

	count, err = repos.Profiles.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, repos.Profiles.DeleteProfile(ctx, "cand-1"), storage.ErrNotFound)
}
