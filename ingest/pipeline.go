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


package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/storage"
)

// Pipeline orchestrates profile ingestion: synchronous durable storage,
// asynchronous embedding and indexing.
type Pipeline struct {
	profiles  storage.ProfileRepository
	indexer   *index.Indexer
	indexPool *ants.Pool
	inflight  sync.WaitGroup
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.indexPool != nil {
			p.indexPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.indexPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a profile ingestion pipeline.
func NewPipeline(
	profiles storage.ProfileRepository,
	indexer *index.Indexer,
	opts ...Option,
) (*Pipeline, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		profiles:  profiles,
		indexer:   indexer,
		indexPool: pool,
		logger:    slog.Default().With("component", "ingest"),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Ingest validates and stores the profiles, then indexes them
// asynchronously. Returns once the profiles are durable; indexing errors
// are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, profiles ...*core.CandidateProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return err
		}
	}

	if err := p.profiles.PutProfiles(ctx, profiles...); err != nil {
		return err
	}

	batch := make([]*core.CandidateProfile, len(profiles))
	copy(batch, profiles)

	p.inflight.Add(1)
	submitErr := p.indexPool.Submit(func() {
		defer p.inflight.Done()
		if _, err := p.indexer.IndexProfiles(context.Background(), batch); err != nil {
			p.logger.Error("error indexing ingested profiles", "count", len(batch), "err", err)
		}
	})
	if submitErr != nil {
		p.inflight.Done()
		// Pool saturated or released; the reindexer will catch up.
		p.logger.Warn("indexing not scheduled", "count", len(batch), "err", submitErr)
	}
	return nil
}

// Remove deletes a profile from storage and the index.
func (p *Pipeline) Remove(ctx context.Context, candidateId string) error {
	if err := p.profiles.DeleteProfile(ctx, candidateId); err != nil {
		return err
	}
	if err := p.indexer.DeleteProfiles(ctx, candidateId); err != nil {
		p.logger.Warn("profile removed but index delete failed", "candidate", candidateId, "err", err)
	}
	return nil
}

// Wait blocks until all scheduled indexing work has finished.
func (p *Pipeline) Wait() {
	p.inflight.Wait()
}

// Release waits for in-flight work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.inflight.Wait()
	if p.indexPool != nil {
		p.indexPool.Release()
	}
}
