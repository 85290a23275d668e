// Copyright 2025 Foundrly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package memory provides an in-process index.VectorIndex used by tests
// and the CLI demo. Fusion is a deterministic linear blend instead of RRF:
// dense and sparse scores are max-normalized per query, then combined as
// 0.7*dense + 0.3*sparse.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/foundrly/matchcore/index"
)

const (
	denseFusionWeight  float32 = 0.7
	sparseFusionWeight float32 = 0.3
)

// Store is an in-memory vector index. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]index.Record
}

// NewStore creates an empty in-memory index.
func NewStore() *Store {
	return &Store{records: make(map[string]index.Record)}
}

// Upsert stores or replaces records.
func (s *Store) Upsert(ctx context.Context, records []index.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.records[rec.ID] = rec
	}
	return nil
}

// Fetch returns stored records for the given IDs, skipping unknown ones.
func (s *Store) Fetch(ctx context.Context, ids ...string) ([]index.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]index.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Delete removes records; unknown IDs are ignored.
func (s *Store) Delete(ctx context.Context, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.records, id)
	}
	return nil
}

// Search scores every non-excluded record that passes the hard filters,
// fuses dense and sparse scores linearly, and returns the top hits sorted
// by score descending with ID as the tiebreaker.
func (s *Store) Search(ctx context.Context, query index.Query) ([]index.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(query.Exclude))
	for _, id := range query.Exclude {
		excluded[id] = struct{}{}
	}

	s.mu.RLock()
	type scored struct {
		id     string
		dense  float32
		sparse float32
	}
	var candidates []scored
	for id, rec := range s.records {
		if _, skip := excluded[id]; skip {
			continue
		}
		if !matchesFilters(rec, query) {
			continue
		}
		c := scored{id: id}
		if query.Dense != nil && rec.Dense != nil {
			c.dense = cosine(query.Dense, rec.Dense)
		}
		if !query.Sparse.IsZero() {
			c.sparse = sparseDot(query.Sparse, rec.Sparse)
		}
		candidates = append(candidates, c)
	}
	s.mu.RUnlock()

	// Max-normalize each signal so the linear weights are meaningful
	// regardless of raw score magnitudes.
	var maxDense, maxSparse float32
	for _, c := range candidates {
		if c.dense > maxDense {
			maxDense = c.dense
		}
		if c.sparse > maxSparse {
			maxSparse = c.sparse
		}
	}

	hits := make([]index.Hit, 0, len(candidates))
	for _, c := range candidates {
		var score float32
		if maxDense > 0 {
			score += denseFusionWeight * (c.dense / maxDense)
		}
		if maxSparse > 0 {
			score += sparseFusionWeight * (c.sparse / maxSparse)
		}
		hits = append(hits, index.Hit{ID: c.id, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	if query.Limit > 0 && len(hits) > query.Limit {
		hits = hits[:query.Limit]
	}
	return hits, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// matchesFilters applies the hard skill and location filters.
func matchesFilters(rec index.Record, query index.Query) bool {
	if len(query.MustSkills) > 0 {
		skills, _ := rec.Payload[index.PayloadSkills].([]string)
		have := make(map[string]struct{}, len(skills))
		for _, s := range skills {
			have[s] = struct{}{}
		}
		for _, want := range query.MustSkills {
			if _, ok := have[want]; !ok {
				return false
			}
		}
	}
	if query.Location != "" {
		loc, _ := rec.Payload[index.PayloadLocation].(string)
		if loc != query.Location {
			return false
		}
	}
	return true
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	return float32(sim)
}

// sparseDot computes the dot product of two sparse vectors whose indices
// are sorted ascending.
func sparseDot(a, b index.SparseVector) float32 {
	var sum float32
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
