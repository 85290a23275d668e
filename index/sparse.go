package index

import (
	"hash/fnv"
	"sort"
	"strings"

	"github.com/foundrly/matchcore/core"
)

// Term weights for the sparse vector. Skills dominate because exact skill
// overlap is the strongest keyword signal for matching; prose fields
// contribute at unit weight.
const (
	skillTermWeight       float32 = 2.0
	institutionTermWeight float32 = 1.5
	proseTermWeight       float32 = 1.0
)

// termIndex maps a normalized term to a stable sparse dimension via FNV-1a.
// Collisions across the 32-bit space are tolerated; they only merge the
// weights of two unrelated terms.
func termIndex(term string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(term))
	return h.Sum32()
}

// normalizeTerm lowercases and trims a term. Hyphens are preserved so
// compound terms like "co-founder" stay distinct from their parts.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// sparseBuilder accumulates term weights before sealing them into a
// SparseVector. Repeated terms sum their weights.
type sparseBuilder struct {
	weights map[uint32]float32
}

func newSparseBuilder() *sparseBuilder {
	return &sparseBuilder{weights: make(map[uint32]float32)}
}

func (b *sparseBuilder) add(term string, weight float32) {
	term = normalizeTerm(term)
	if term == "" {
		return
	}
	b.weights[termIndex(term)] += weight
}

func (b *sparseBuilder) addAll(terms []string, weight float32) {
	for _, t := range terms {
		b.add(t, weight)
	}
}

// build seals the accumulated weights into a SparseVector with indices
// sorted ascending, the canonical order vector databases expect.
func (b *sparseBuilder) build() SparseVector {
	if len(b.weights) == 0 {
		return SparseVector{}
	}
	indices := make([]uint32, 0, len(b.weights))
	for idx := range b.weights {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	values := make([]float32, len(indices))
	for i, idx := range indices {
		values[i] = b.weights[idx]
	}
	return SparseVector{Indices: indices, Values: values}
}

// ProfileSparseVector derives the sparse term-weight vector for a candidate
// profile. Deterministic: identical profiles always produce identical
// vectors.
func ProfileSparseVector(profile *core.CandidateProfile) SparseVector {
	b := newSparseBuilder()
	b.addAll(profile.Skills, skillTermWeight)
	b.addAll(profile.Institutions, institutionTermWeight)
	for _, field := range [][]string{profile.Goals, profile.Demands, profile.Resources, profile.Projects} {
		for _, entry := range field {
			b.addAll(strings.Fields(entry), proseTermWeight)
		}
	}
	if profile.Location != "" {
		b.add(profile.Location, proseTermWeight)
	}
	return b.build()
}

// QuerySparseVector derives a sparse vector from search intent terms.
// Required skills carry the skill weight so they pull matching candidates
// up even before hard filtering; free-text terms carry unit weight.
func QuerySparseVector(requiredSkills, preferredSkills, freeTerms []string) SparseVector {
	b := newSparseBuilder()
	b.addAll(requiredSkills, skillTermWeight)
	b.addAll(preferredSkills, proseTermWeight)
	b.addAll(freeTerms, proseTermWeight)
	return b.build()
}
