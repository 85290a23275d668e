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


package index

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/core"
)

// Payload keys stored alongside each indexed candidate.
const (
	PayloadContentHash = "content_hash"
	PayloadSkills      = "skills"
	PayloadLocation    = "location"
)

// Indexer turns candidate profiles into index records and keeps the vector
// index in sync with profile state. Safe for concurrent use when the
// underlying embedder and index are.
type Indexer struct {
	embedder ai.Embedder
	store    VectorIndex
	logger   *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithIndexerLogger overrides the default logger.
func WithIndexerLogger(logger *slog.Logger) IndexerOption {
	return func(ix *Indexer) {
		ix.logger = logger
	}
}

// NewIndexer creates an Indexer over the given embedder and vector index.
func NewIndexer(embedder ai.Embedder, store VectorIndex, opts ...IndexerOption) (*Indexer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrIndexRequired
	}
	ix := &Indexer{
		embedder: embedder,
		store:    store,
		logger:   slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// IndexProfiles indexes the given profiles, embedding only those whose
// canonical text changed since they were last indexed. Profiles whose text
// is empty or whose embedding fails are still indexed with a nil dense
// vector so keyword filtering keeps working for them.
//
// Returns the number of profiles that were actually (re)embedded.
func (ix *Indexer) IndexProfiles(ctx context.Context, profiles []*core.CandidateProfile) (int, error) {
	if len(profiles) == 0 {
		return 0, nil
	}
	for _, p := range profiles {
		if p == nil || p.Id == "" {
			return 0, ErrEmptyCandidateId
		}
	}

	stale, unchanged, err := ix.splitByContentHash(ctx, profiles)
	if err != nil {
		return 0, err
	}
	if unchanged > 0 {
		ix.logger.Debug("skipping unchanged profiles", "count", unchanged)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	records := make([]Record, 0, len(stale))
	for _, p := range stale {
		records = append(records, ix.buildRecord(ctx, p))
	}
	if err := ix.store.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upserting %d records: %w", len(records), err)
	}
	return len(stale), nil
}

// DeleteProfiles removes candidates from the index.
func (ix *Indexer) DeleteProfiles(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return ix.store.Delete(ctx, ids...)
}

// splitByContentHash partitions profiles into those needing (re)embedding
// and a count of those whose indexed content hash already matches.
func (ix *Indexer) splitByContentHash(ctx context.Context, profiles []*core.CandidateProfile) ([]*core.CandidateProfile, int, error) {
	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.Id
	}
	existing, err := ix.store.Fetch(ctx, ids...)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching existing records: %w", err)
	}

	hashes := make(map[string]string, len(existing))
	for _, rec := range existing {
		if h, ok := rec.Payload[PayloadContentHash].(string); ok {
			hashes[rec.ID] = h
		}
	}

	var stale []*core.CandidateProfile
	unchanged := 0
	for _, p := range profiles {
		if hashes[p.Id] == contentHashString(p) {
			unchanged++
			continue
		}
		stale = append(stale, p)
	}
	return stale, unchanged, nil
}

// contentHashString renders the profile's content hash as the hex string
// stored in the index payload.
func contentHashString(p *core.CandidateProfile) string {
	return strconv.FormatUint(uint64(p.ContentHash()), 16)
}

// buildRecord derives the full index record for a profile. Embedding
// failures degrade to a nil dense vector rather than failing the batch.
func (ix *Indexer) buildRecord(ctx context.Context, profile *core.CandidateProfile) Record {
	var dense []float32
	text := profile.CanonicalText()
	if text != "" {
		vec, err := ix.embedder.EmbedText(ctx, text)
		if err != nil {
			ix.logger.Warn("embedding failed, indexing without dense vector",
				"candidate", profile.Id, "error", err)
		} else {
			dense = vec
		}
	}

	skills := make([]string, len(profile.Skills))
	for i, s := range profile.Skills {
		skills[i] = normalizeTerm(s)
	}

	return Record{
		ID:     profile.Id,
		Dense:  dense,
		Sparse: ProfileSparseVector(profile),
		Payload: map[string]any{
			PayloadContentHash: contentHashString(profile),
			PayloadSkills:      skills,
			PayloadLocation:    normalizeTerm(profile.Location),
		},
	}
}
