package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for internally owned entities (swipe records,
// checkpoints). Candidate identifiers come from the external profile store
// and stay strings.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CollaborationType classifies what kind of partner the caller is looking for.
// It selects the scoring weight table used by the match scorer.
type CollaborationType int

const (
	// CollaborationCoFounder is a co-founder search.
	CollaborationCoFounder CollaborationType = iota + 1
	// CollaborationMentor is a mentor search.
	CollaborationMentor
	// CollaborationInvestor is an investor search.
	CollaborationInvestor
	// CollaborationCollaborator is a project-collaborator search.
	CollaborationCollaborator
	// CollaborationOther is any search that does not fit the above.
	CollaborationOther
)

// String returns the canonical lowercase name of the collaboration type.
func (c CollaborationType) String() string {
	switch c {
	case CollaborationCoFounder:
		return "co-founder"
	case CollaborationMentor:
		return "mentor"
	case CollaborationInvestor:
		return "investor"
	case CollaborationCollaborator:
		return "collaborator"
	default:
		return "other"
	}
}

// ParseCollaborationType converts a wire name into a CollaborationType.
// Unrecognized names map to CollaborationOther rather than failing, so
// loosely structured upstream output degrades instead of erroring.
func ParseCollaborationType(s string) CollaborationType {
	switch s {
	case "co-founder", "cofounder":
		return CollaborationCoFounder
	case "mentor":
		return CollaborationMentor
	case "investor":
		return CollaborationInvestor
	case "collaborator":
		return CollaborationCollaborator
	default:
		return CollaborationOther
	}
}

// ResponseRateUnknown marks a profile whose response rate has not been observed.
const ResponseRateUnknown = -1

// CandidateProfile is a read-only projection of a user's matchable attributes.
// The profile store owns the authoritative record; the engine only reads it
// and derives embeddings from it.
type CandidateProfile struct {
	Id                string
	Name              string
	Skills            []string
	Goals             []string
	Demands           []string
	Resources         []string
	Location          string
	Institutions      []string
	Projects          []string
	ResponseRate      int // 0-100, or ResponseRateUnknown
	MutualConnections int
	Online            bool
	LastSeen          time.Time
	UpdatedAt         time.Time // Monotonic profile-update timestamp, drives embedding staleness
}

// CanonicalText returns the deterministic concatenation of a profile's
// textual fields used for embedding. Identical profiles always produce
// identical text, which keeps indexing idempotent.
func (p *CandidateProfile) CanonicalText() string {
	var b strings.Builder
	writeSection := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(strings.Join(values, ", "))
		b.WriteString("\n")
	}
	writeSection("skills", p.Skills)
	writeSection("goals", p.Goals)
	writeSection("demands", p.Demands)
	writeSection("resources", p.Resources)
	writeSection("institutions", p.Institutions)
	writeSection("projects", p.Projects)
	if p.Location != "" {
		b.WriteString("location: ")
		b.WriteString(p.Location)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// ContentHash returns the BLAKE2b hash of the profile's canonical text.
// Used to detect stale embeddings without re-embedding.
func (p *CandidateProfile) ContentHash() ID {
	return IDFromContent(p.CanonicalText())
}

// SearchIntent is the structured form of a free-text query. It lives only
// for the duration of a single search request.
type SearchIntent struct {
	RequiredSkills  []string
	PreferredSkills []string
	Collaboration   CollaborationType
	LocationHint    string
	RawQuery        string
}

// MatchScore holds the six compatibility sub-scores plus the weighted
// composite, all in [0,100]. Computed fresh per (caller, candidate) pair.
type MatchScore struct {
	Skills       int
	Goals        int
	Location     int
	Network      int
	Availability int
	Experience   int
	Overall      int
}

// SwipeAction is the direction of a swipe decision.
type SwipeAction int

const (
	// SwipeLike expresses interest in the candidate.
	SwipeLike SwipeAction = iota + 1
	// SwipeIgnore dismisses the candidate.
	SwipeIgnore
	// SwipeSuperLike expresses strong interest in the candidate.
	SwipeSuperLike
)

// String returns the wire name of the swipe action.
func (a SwipeAction) String() string {
	switch a {
	case SwipeLike:
		return "like"
	case SwipeIgnore:
		return "ignore"
	case SwipeSuperLike:
		return "super_like"
	default:
		return "unknown"
	}
}

// ParseSwipeAction converts a wire name into a SwipeAction.
// Returns ErrInvalidSwipeAction for unrecognized names.
func ParseSwipeAction(s string) (SwipeAction, error) {
	switch s {
	case "like":
		return SwipeLike, nil
	case "ignore":
		return SwipeIgnore, nil
	case "super_like":
		return SwipeSuperLike, nil
	default:
		return 0, ErrInvalidSwipeAction
	}
}

// SwipeRecord is one irreversible swipe decision. Append-only; once written
// it is never mutated. The idempotency key makes retried submissions safe.
type SwipeRecord struct {
	Id             ID
	CallerId       string
	TargetId       string
	Action         SwipeAction
	SourceQuery    string
	SourceTier     int
	CardPosition   int
	IdempotencyKey string
	Timestamp      time.Time // When the caller swiped
	InsertedAt     time.Time // When the record entered the ledger
}

// CardSession tracks the single candidate currently displayed to a caller,
// with the context that produced it. Overwritten on each new card.
type CardSession struct {
	CallerId    string
	CandidateId string
	SourceQuery string
	SourceTier  int
	Position    int
	UpdatedAt   time.Time
}

// Checkpoint records a resumable position for a long-running batch
// processor. Cursor is the last candidate ID fully processed; iteration
// resumes just after it.
type Checkpoint struct {
	ProcessorType string
	Cursor        string
	UpdatedAt     time.Time
}

// RankedCandidate is one entry of a search response: the candidate, its
// multi-dimensional score, a short human-readable justification, and the
// retrieval tier at which it surfaced.
type RankedCandidate struct {
	Profile     *CandidateProfile
	Score       MatchScore
	Explanation string
	Tier        int
	RawScore    float32 // Fusion score from the vector index, kept for analytics
}
