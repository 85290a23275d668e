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


package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/storage"
)

// Default search parameters.
const (
	DefaultMinResults = 5
	DefaultLimit      = 20
	MaxTiers          = 4
)

// Options tune a single search invocation.
type Options struct {
	// ExcludeIds are candidate IDs that must never surface, typically the
	// caller's exclusion set plus the caller themselves.
	ExcludeIds []string

	// MinResults stops tier escalation once this many candidates are
	// found. Defaults to DefaultMinResults.
	MinResults int

	// MaxTiers caps how far relaxation may go, 1..MaxTiers.
	// Defaults to MaxTiers.
	MaxTiers int

	// Limit caps the per-tier fetch and the final result count.
	// Defaults to DefaultLimit.
	Limit int
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.MinResults <= 0 {
		out.MinResults = DefaultMinResults
	}
	if out.MaxTiers <= 0 || out.MaxTiers > MaxTiers {
		out.MaxTiers = MaxTiers
	}
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	return out
}

// Orchestrator runs tiered retrieval and hydrates hits into candidates.
type Orchestrator struct {
	retriever *retriever
	profiles  storage.ProfileRepository
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a tiered search orchestrator.
func NewOrchestrator(
	profiles storage.ProfileRepository,
	store index.VectorIndex,
	embedder ai.Embedder,
	opts ...Option,
) (*Orchestrator, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if store == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	o := &Orchestrator{
		profiles: profiles,
		logger:   slog.Default().With("component", "search"),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	o.retriever = &retriever{embedder: embedder, store: store, logger: o.logger}
	return o, nil
}

// Search runs the relaxation tiers until enough candidates are found.
func (o *Orchestrator) Search(ctx context.Context, intent *core.SearchIntent, opts *Options) ([]*core.RankedCandidate, error) {
	return o.SearchWithMonitor(ctx, intent, opts, nil)
}

// SearchWithMonitor runs a tiered search with per-stage callbacks.
//
// Escalation rules: tiers run in order and stop once MinResults distinct
// candidates are collected. A tier 0 that matches nothing never ends the
// search by itself; tier 1 always gets its turn. If the index fails after
// some tier already produced hits, the partial results are returned;
// a failure before any hit surfaces as ErrIndexUnavailable.
func (o *Orchestrator) SearchWithMonitor(ctx context.Context, intent *core.SearchIntent, opts *Options, monitor SearchMonitor) ([]*core.RankedCandidate, error) {
	if intent == nil {
		return nil, ErrIntentRequired
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	options := opts.withDefaults()

	monitor.Start(intent)

	plan := o.retriever.plan(ctx, intent, options.ExcludeIds, options.Limit)

	seen := make(map[string]tierHit)
	var order []string

	for tier := 0; tier < options.MaxTiers; tier++ {
		// Cancellation is cooperative at tier boundaries; an abandoned
		// request stops escalating here.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(order) >= options.MinResults {
			break
		}

		monitor.TierStart(tier)
		hits, err := o.retriever.retrieve(ctx, plan, tier)
		if err != nil {
			monitor.TierFailed(tier, err)
			if len(order) > 0 {
				o.logger.Warn("index failed mid-escalation, returning partial results",
					"tier", tier, "collected", len(order), "error", err)
				break
			}
			return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
		}
		monitor.AfterTier(tier, hits)

		for _, hit := range hits {
			if _, dup := seen[hit.ID]; dup {
				monitor.DuplicateHit(tier, hit.ID)
				continue
			}
			seen[hit.ID] = tierHit{tier: tier, score: hit.Score}
			order = append(order, hit.ID)
		}
	}

	if len(order) > options.Limit {
		order = order[:options.Limit]
	}

	results, err := o.hydrate(ctx, order, seen)
	if err != nil {
		return nil, err
	}
	monitor.Finish(results)
	return results, nil
}

// tierHit remembers where and how strongly a candidate first surfaced.
type tierHit struct {
	tier  int
	score float32
}

// hydrate resolves hit IDs to stored profiles, preserving hit order.
// Hits without a stored profile are dropped; the index can be briefly
// ahead of the profile store after deletions.
func (o *Orchestrator) hydrate(ctx context.Context, order []string, seen map[string]tierHit) ([]*core.RankedCandidate, error) {
	if len(order) == 0 {
		return []*core.RankedCandidate{}, nil
	}

	profiles, err := o.profiles.GetProfiles(ctx, order...)
	if err != nil {
		return nil, fmt.Errorf("hydrating %d candidates: %w", len(order), err)
	}
	byId := make(map[string]*core.CandidateProfile, len(profiles))
	for _, p := range profiles {
		byId[p.Id] = p
	}

	results := make([]*core.RankedCandidate, 0, len(order))
	for _, id := range order {
		profile, ok := byId[id]
		if !ok {
			o.logger.Debug("hit without stored profile, dropping", "candidate", id)
			continue
		}
		f := seen[id]
		results = append(results, &core.RankedCandidate{
			Profile:  profile,
			Tier:     f.tier,
			RawScore: f.score,
		})
	}
	return results, nil
}
