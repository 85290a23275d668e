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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
	"github.com/foundrly/matchcore/storage"
)

// checkpointType identifies this processor in the checkpoint store.
const checkpointType = "reindex"

// Config holds configuration for a reindex run.
type Config struct {
	// BatchSize is the number of profiles to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of profiles)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed batches
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes a completed run.
type Stats struct {
	Processed  int // profiles examined
	Reembedded int // profiles whose text had changed and were re-embedded
}

// Reindexer refreshes stale index entries for every stored profile.
type Reindexer struct {
	profiles    storage.ProfileRepository
	indexer     *index.Indexer
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	iterator    *ProfileIterator
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(
	profiles storage.ProfileRepository,
	indexer *index.Indexer,
	checkpoints storage.CheckpointRepository,
	config *Config,
	progress io.Writer,
) (*Reindexer, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointsRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reindexer{
		profiles:    profiles,
		indexer:     indexer,
		checkpoints: checkpoints,
		config:      config,
		progress:    progress,
		iterator:    NewProfileIterator(profiles, config.BatchSize),
	}, nil
}

// Run walks every profile and re-embeds the ones whose canonical text no
// longer matches the indexed content hash. Resumes from the last saved
// checkpoint; a completed run clears it so the next run starts fresh.
func (r *Reindexer) Run(ctx context.Context) (*Stats, error) {
	total, err := r.profiles.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting profiles: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No profiles to reindex (0 profiles)\n")
		return &Stats{}, nil
	}

	cursor := ""
	if checkpoint, err := r.checkpoints.LoadCheckpoint(ctx, checkpointType); err != nil {
		return nil, fmt.Errorf("loading checkpoint: %w", err)
	} else if checkpoint != nil && checkpoint.Cursor != "" {
		cursor = checkpoint.Cursor
		fmt.Fprintf(r.progress, "Resuming reindex after %q\n", cursor)
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d profiles (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	stats := &Stats{}
	err = r.iterator.ForEach(ctx, cursor, func(batch []*core.CandidateProfile) error {
		var reembedded int
		retryErr := RetryWithBackoff(ctx, func() error {
			var indexErr error
			reembedded, indexErr = r.indexer.IndexProfiles(ctx, batch)
			return indexErr
		}, r.config.MaxRetries, r.config.RetryDelay)
		if retryErr != nil {
			return fmt.Errorf("indexing batch after %d attempts: %w", r.config.MaxRetries, retryErr)
		}

		stats.Processed += len(batch)
		stats.Reembedded += reembedded
		tracker.Update(stats.Processed)

		return r.saveCheckpoint(ctx, batch[len(batch)-1].Id)
	})
	if err != nil {
		return stats, err
	}

	// Completed; clear the cursor so the next run covers everything.
	if err := r.saveCheckpoint(ctx, ""); err != nil {
		return stats, err
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Examined %d profiles, re-embedded %d in %v\n",
		stats.Processed, stats.Reembedded, elapsed.Round(time.Second))

	return stats, nil
}

func (r *Reindexer) saveCheckpoint(ctx context.Context, cursor string) error {
	checkpoint := &core.Checkpoint{
		ProcessorType: checkpointType,
		Cursor:        cursor,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := r.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	return nil
}
