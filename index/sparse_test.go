package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrly/matchcore/core"
)

func TestProfileSparseVector(t *testing.T) {
	t.Run("deterministic for identical profiles", func(t *testing.T) {
		p := &core.CandidateProfile{
			Id:           "cand-1",
			Skills:       []string{"Python", "ML"},
			Institutions: []string{"Tsinghua"},
			Location:     "Beijing",
		}
		a := ProfileSparseVector(p)
		b := ProfileSparseVector(p)
		assert.Equal(t, a, b)
	})

	t.Run("indices sorted ascending", func(t *testing.T) {
		v := ProfileSparseVector(&core.CandidateProfile{
			Id:     "cand-1",
			Skills: []string{"Go", "Rust", "Python", "Kubernetes", "SQL"},
		})
		for i := 1; i < len(v.Indices); i++ {
			assert.Less(t, v.Indices[i-1], v.Indices[i])
		}
	})

	t.Run("skills outweigh prose terms", func(t *testing.T) {
		v := ProfileSparseVector(&core.CandidateProfile{
			Id:     "cand-1",
			Skills: []string{"python"},
			Goals:  []string{"fundraising"},
		})
		require.Len(t, v.Indices, 2)
		weights := map[uint32]float32{}
		for i, idx := range v.Indices {
			weights[idx] = v.Values[i]
		}
		assert.Equal(t, skillTermWeight, weights[termIndex("python")])
		assert.Equal(t, proseTermWeight, weights[termIndex("fundraising")])
	})

	t.Run("case insensitive", func(t *testing.T) {
		a := ProfileSparseVector(&core.CandidateProfile{Id: "a", Skills: []string{"PYTHON"}})
		b := ProfileSparseVector(&core.CandidateProfile{Id: "b", Skills: []string{"python"}})
		assert.Equal(t, a, b)
	})

	t.Run("empty profile yields zero vector", func(t *testing.T) {
		v := ProfileSparseVector(&core.CandidateProfile{Id: "cand-1"})
		assert.True(t, v.IsZero())
	})
}

func TestQuerySparseVector(t *testing.T) {
	v := QuerySparseVector([]string{"python"}, []string{"ml"}, []string{"startup"})
	weights := map[uint32]float32{}
	for i, idx := range v.Indices {
		weights[idx] = v.Values[i]
	}
	assert.Equal(t, skillTermWeight, weights[termIndex("python")])
	assert.Equal(t, proseTermWeight, weights[termIndex("ml")])
	assert.Equal(t, proseTermWeight, weights[termIndex("startup")])
}
