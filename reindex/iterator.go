package reindex

import (
	"context"

	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
)

// DefaultBatchSize is the default number of profiles fetched per batch
const DefaultBatchSize = 100

// ProfileIterator walks the profile store in key order, batch by batch.
type ProfileIterator struct {
	repo      storage.ProfileRepository
	batchSize int
}

// NewProfileIterator creates a new profile iterator.
// batchSize: number of profiles per batch (must be > 0)
func NewProfileIterator(repo storage.ProfileRepository, batchSize int) *ProfileIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ProfileIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of profiles, starting after the given
// candidate ID ("" starts from the beginning). Iteration stops on the
// first error from fn. Context cancellation is checked between batches.
func (it *ProfileIterator) ForEach(ctx context.Context, afterId string, fn func([]*core.CandidateProfile) error) error {
	cursor := afterId
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := make([]*core.CandidateProfile, 0, it.batchSize)
		err := it.repo.IterateProfiles(ctx, cursor, func(p *core.CandidateProfile) (bool, error) {
			batch = append(batch, p)
			return len(batch) < it.batchSize, nil
		})
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < it.batchSize {
			return nil
		}
		cursor = batch[len(batch)-1].Id
	}
}
