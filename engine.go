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


// Package matchcore is a candidate discovery and matching engine: free-text
// queries become structured intents, intents run against a hybrid vector
// index under tiered constraint relaxation, and the surfaced candidates are
// scored across six compatibility dimensions. Swipe decisions land in a
// durable ledger that never fails the caller, and card sessions are tracked
// under a throttle. The Engine type wires all of it over a single badger
// store and a pluggable vector index.
package matchcore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/ai/openai"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/ingest"
	"github.com/foundrly/matchcore/intent"
	"github.com/foundrly/matchcore/ledger"
	"github.com/foundrly/matchcore/reindex"
	"github.com/foundrly/matchcore/score"
	"github.com/foundrly/matchcore/search"
	"github.com/foundrly/matchcore/session"
	"github.com/foundrly/matchcore/storage"
	"github.com/foundrly/matchcore/storage/badger"
)

// Engine is the top-level facade wiring storage, AI, retrieval, scoring,
// and the per-caller ledgers and card trackers.
type Engine struct {
	backend        *badger.Backend
	profileRepo    storage.ProfileRepository
	swipeQueueRepo storage.SwipeQueueRepository
	exclusionRepo  storage.ExclusionRepository
	sessionRepo    storage.SessionRepository
	checkpointRepo storage.CheckpointRepository

	provider    ai.AIProvider
	vectorIndex index.VectorIndex
	remote      ledger.RemoteStore

	parser       *intent.Parser
	orchestrator *search.Orchestrator
	scorer       *score.Scorer
	indexer      *index.Indexer

	mu       sync.Mutex
	ledgers  map[string]*ledger.Ledger
	trackers map[string]*session.Tracker

	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	remote   ledger.RemoteStore
	weights  score.WeightTable
	inMemory bool
}

// WithAIConfig sets the AI provider configuration used when no explicit
// provider is supplied.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider supplies a pre-built AI provider, bypassing the OpenAI
// provider construction. Used by tests and embedded deployments.
func WithAIProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithRemoteStore wires the external swipe ledger service. Without it,
// swipes are durable locally only.
func WithRemoteStore(remote ledger.RemoteStore) EngineOption {
	return func(o *engineOptions) {
		o.remote = remote
	}
}

// WithWeights overrides the scoring weight table.
func WithWeights(weights score.WeightTable) EngineOption {
	return func(o *engineOptions) {
		o.weights = weights
	}
}

// WithInMemoryStorage keeps the badger store in memory. Used by tests and
// the demo CLI.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// localOnlyRemote accepts every write without doing anything; it stands in
// for the ledger service in single-node deployments.
type localOnlyRemote struct{}

func (localOnlyRemote) Put(context.Context, *core.SwipeRecord) error        { return nil }
func (localOnlyRemote) PutBatch(context.Context, []*core.SwipeRecord) error { return nil }

// NewEngine opens the engine over a badger store at filePath and the given
// vector index.
func NewEngine(filePath string, vectorIndex index.VectorIndex, opts ...EngineOption) (*Engine, error) {
	if vectorIndex == nil {
		return nil, search.ErrIndexRequired
	}

	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		remote:   localOnlyRemote{},
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	profileRepo, err := badger.NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	swipeQueueRepo, err := badger.NewSwipeQueueRepository(backend)
	if err != nil {
		profileRepo.Close()
		backend.Close()
		return nil, err
	}
	exclusionRepo, err := badger.NewExclusionRepository(backend)
	if err != nil {
		swipeQueueRepo.Close()
		profileRepo.Close()
		backend.Close()
		return nil, err
	}
	sessionRepo, err := badger.NewSessionRepository(backend)
	if err != nil {
		exclusionRepo.Close()
		swipeQueueRepo.Close()
		profileRepo.Close()
		backend.Close()
		return nil, err
	}
	checkpointRepo := badger.NewCheckpointRepository(backend)

	closeAll := func() {
		sessionRepo.Close()
		exclusionRepo.Close()
		swipeQueueRepo.Close()
		profileRepo.Close()
		backend.Close()
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			closeAll()
			return nil, err
		}
	}

	parser, err := intent.NewParser(provider.IntentExtractor())
	if err != nil {
		closeAll()
		return nil, err
	}
	orchestrator, err := search.NewOrchestrator(profileRepo, vectorIndex, provider.Embedder())
	if err != nil {
		closeAll()
		return nil, err
	}
	scorer, err := score.NewScorer(options.weights)
	if err != nil {
		closeAll()
		return nil, err
	}
	indexer, err := index.NewIndexer(provider.Embedder(), vectorIndex)
	if err != nil {
		closeAll()
		return nil, err
	}

	return &Engine{
		backend:        backend,
		profileRepo:    profileRepo,
		swipeQueueRepo: swipeQueueRepo,
		exclusionRepo:  exclusionRepo,
		sessionRepo:    sessionRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		vectorIndex:    vectorIndex,
		remote:         options.remote,
		parser:         parser,
		orchestrator:   orchestrator,
		scorer:         scorer,
		indexer:        indexer,
		ledgers:        make(map[string]*ledger.Ledger),
		trackers:       make(map[string]*session.Tracker),
		logger:         slog.Default(),
	}, nil
}

// Close releases every resource the engine owns. The vector index is not
// closed; its lifecycle belongs to the caller who supplied it.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.sessionRepo.Close(); err != nil {
		e.logger.Error("error closing session repository", "err", err)
		return err
	}
	if err := e.exclusionRepo.Close(); err != nil {
		e.logger.Error("error closing exclusion repository", "err", err)
		return err
	}
	if err := e.swipeQueueRepo.Close(); err != nil {
		e.logger.Error("error closing swipe queue repository", "err", err)
		return err
	}
	if err := e.profileRepo.Close(); err != nil {
		e.logger.Error("error closing profile repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// SearchRequest is one inbound search call.
type SearchRequest struct {
	RawQuery      string
	CallerProfile *core.CandidateProfile
	ExcludeIds    []string
	Limit         int
}

// SearchResponse carries the ranked candidates for a search.
type SearchResponse struct {
	Intent     *core.SearchIntent
	Candidates []*core.RankedCandidate
}

// Search runs the full pipeline: intent parsing, tiered retrieval,
// batch scoring, ranking. The caller's exclusion set is always applied on
// top of any explicitly passed exclusions, and the caller never surfaces
// in their own results.
func (e *Engine) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	caller := req.CallerProfile
	callerCtx := ai.CallerContext{}
	if caller != nil {
		callerCtx = ai.CallerContext{
			Skills:   caller.Skills,
			Goals:    caller.Goals,
			Location: caller.Location,
		}
	}

	parsed, err := e.parser.Parse(ctx, req.RawQuery, callerCtx)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{}, req.ExcludeIds...)
	if caller != nil && caller.Id != "" {
		excluded, err := e.exclusionRepo.All(ctx, caller.Id)
		if err != nil {
			return nil, fmt.Errorf("loading exclusion set: %w", err)
		}
		exclude = append(exclude, excluded...)
		exclude = append(exclude, caller.Id)
	}

	candidates, err := e.orchestrator.Search(ctx, parsed, &search.Options{
		ExcludeIds: exclude,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	profiles := make([]*core.CandidateProfile, len(candidates))
	for i, c := range candidates {
		profiles[i] = c.Profile
	}
	scores, err := score.ScoreBatch(ctx, e.scorer, caller, profiles, parsed)
	if err != nil {
		return nil, err
	}
	for i, c := range candidates {
		c.Score = scores[i]
		c.Explanation = score.Explain(scores[i])
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score.Overall != candidates[j].Score.Overall {
			return candidates[i].Score.Overall > candidates[j].Score.Overall
		}
		if candidates[i].Tier != candidates[j].Tier {
			return candidates[i].Tier < candidates[j].Tier
		}
		return candidates[i].RawScore > candidates[j].RawScore
	})

	return &SearchResponse{Intent: parsed, Candidates: candidates}, nil
}

// SwipeRequest is one inbound swipe decision.
type SwipeRequest struct {
	CallerId       string
	TargetId       string
	Action         string
	SourceQuery    string
	SourceTier     int
	CardPosition   int
	IdempotencyKey string
}

// SwipeResponse acknowledges a swipe.
type SwipeResponse struct {
	Accepted bool
}

// Swipe records a swipe decision through the caller's ledger.
func (e *Engine) Swipe(ctx context.Context, req *SwipeRequest) (*SwipeResponse, error) {
	action, err := core.ParseSwipeAction(req.Action)
	if err != nil {
		return &SwipeResponse{}, err
	}

	l, err := e.ledgerFor(req.CallerId)
	if err != nil {
		return &SwipeResponse{}, err
	}
	err = l.Record(ctx, &core.SwipeRecord{
		CallerId:       req.CallerId,
		TargetId:       req.TargetId,
		Action:         action,
		SourceQuery:    req.SourceQuery,
		SourceTier:     req.SourceTier,
		CardPosition:   req.CardPosition,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return &SwipeResponse{}, err
	}
	return &SwipeResponse{Accepted: true}, nil
}

// SwipeBatch records several swipes in order, used by offline-sync
// flushes. Stops at the first validation failure.
func (e *Engine) SwipeBatch(ctx context.Context, reqs []*SwipeRequest) (*SwipeResponse, error) {
	for _, req := range reqs {
		if _, err := e.Swipe(ctx, req); err != nil {
			return &SwipeResponse{}, err
		}
	}
	return &SwipeResponse{Accepted: true}, nil
}

// SyncSwipes drains the caller's pending swipe queue to the remote store.
func (e *Engine) SyncSwipes(ctx context.Context, callerId string) error {
	l, err := e.ledgerFor(callerId)
	if err != nil {
		return err
	}
	return l.Sync(ctx)
}

// UpdateCard records the card currently displayed to the caller.
func (e *Engine) UpdateCard(ctx context.Context, callerId, candidateId string, card session.Context) error {
	t, err := e.trackerFor(callerId)
	if err != nil {
		return err
	}
	return t.Update(ctx, candidateId, card)
}

// GetCard returns the caller's current card, or nil when none is shown.
func (e *Engine) GetCard(ctx context.Context, callerId string) (*core.CardSession, error) {
	t, err := e.trackerFor(callerId)
	if err != nil {
		return nil, err
	}
	return t.Get(ctx)
}

// ClearCard removes the caller's card state.
func (e *Engine) ClearCard(ctx context.Context, callerId string) error {
	t, err := e.trackerFor(callerId)
	if err != nil {
		return err
	}
	return t.Clear(ctx)
}

// ProfileRepository exposes the underlying profile store.
func (e *Engine) ProfileRepository() storage.ProfileRepository {
	return e.profileRepo
}

// NewIngestionPipeline creates a profile ingestion pipeline over the
// engine's storage and indexer.
func (e *Engine) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(e.profileRepo, e.indexer, opts...)
}

// NewReindexer creates a reindexer over the engine's storage and indexer.
func (e *Engine) NewReindexer(config *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(e.profileRepo, e.indexer, e.checkpointRepo, config, progress)
}

// ledgerFor returns the caller's ledger, creating it on first use.
func (e *Engine) ledgerFor(callerId string) (*ledger.Ledger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l, ok := e.ledgers[callerId]; ok {
		return l, nil
	}
	l, err := ledger.NewLedger(callerId, e.exclusionRepo, e.swipeQueueRepo, e.remote)
	if err != nil {
		return nil, err
	}
	e.ledgers[callerId] = l
	return l, nil
}

// trackerFor returns the caller's card tracker, creating it on first use.
func (e *Engine) trackerFor(callerId string) (*session.Tracker, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.trackers[callerId]; ok {
		return t, nil
	}
	t, err := session.NewTracker(callerId, e.sessionRepo)
	if err != nil {
		return nil, err
	}
	e.trackers[callerId] = t
	return t, nil
}
