package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("skills: Python, ML")
		id2 := IDFromContent("skills: Python, ML")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content produces different IDs", func(t *testing.T) {
		id1 := IDFromContent("skills: Python")
		id2 := IDFromContent("skills: Rust")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		id := IDFromContent("")
		assert.Equal(t, id, IDFromContent(""))
	})
}

func TestCanonicalText(t *testing.T) {
	profile := &CandidateProfile{
		Id:           "cand-1",
		Skills:       []string{"Python", "TensorFlow"},
		Goals:        []string{"build an AI startup"},
		Location:     "Beijing",
		Institutions: []string{"Tsinghua"},
	}

	text := profile.CanonicalText()
	assert.Contains(t, text, "skills: Python, TensorFlow")
	assert.Contains(t, text, "goals: build an AI startup")
	assert.Contains(t, text, "location: Beijing")

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, text, profile.CanonicalText())
		assert.Equal(t, profile.ContentHash(), profile.ContentHash())
	})

	t.Run("empty sections omitted", func(t *testing.T) {
		empty := &CandidateProfile{Id: "cand-2"}
		assert.Equal(t, "", empty.CanonicalText())
	})

	t.Run("hash changes with content", func(t *testing.T) {
		edited := *profile
		edited.Skills = []string{"Python", "TensorFlow", "Kubernetes"}
		assert.NotEqual(t, profile.ContentHash(), edited.ContentHash())
	})
}

func TestSwipeActionRoundTrip(t *testing.T) {
	for _, action := range []SwipeAction{SwipeLike, SwipeIgnore, SwipeSuperLike} {
		parsed, err := ParseSwipeAction(action.String())
		require.NoError(t, err)
		assert.Equal(t, action, parsed)
	}

	t.Run("unknown action", func(t *testing.T) {
		_, err := ParseSwipeAction("poke")
		assert.ErrorIs(t, err, ErrInvalidSwipeAction)
	})
}

func TestCollaborationTypeString(t *testing.T) {
	assert.Equal(t, "co-founder", CollaborationCoFounder.String())
	assert.Equal(t, "mentor", CollaborationMentor.String())
	assert.Equal(t, "investor", CollaborationInvestor.String())
	assert.Equal(t, "collaborator", CollaborationCollaborator.String())
	assert.Equal(t, "other", CollaborationOther.String())
	assert.Equal(t, "other", CollaborationType(99).String())
}
