package score

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/foundrly/matchcore/core"
)

// defaultBatchWorkers bounds the scoring fan-out. Candidate batches are
// small (typically <=50), so a handful of workers saturates the work.
const defaultBatchWorkers = 8

// ScoreBatch scores every candidate against the caller concurrently on a
// bounded ants pool, preserving input order in the output. A nil candidate
// yields a fully neutral score rather than being dropped.
func ScoreBatch(ctx context.Context, scorer *Scorer, caller *core.CandidateProfile, candidates []*core.CandidateProfile, intent *core.SearchIntent) ([]core.MatchScore, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	workers := defaultBatchWorkers
	if len(candidates) < workers {
		workers = len(candidates)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	scores := make([]core.MatchScore, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			break
		}
		i, candidate := i, candidate
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if candidate == nil {
				candidate = &core.CandidateProfile{ResponseRate: core.ResponseRateUnknown}
			}
			scores[i] = scorer.Score(caller, candidate, intent)
		})
		if submitErr != nil {
			// Pool rejected the task; score inline so the slot is
			// still filled.
			wg.Done()
			if candidate == nil {
				candidate = &core.CandidateProfile{ResponseRate: core.ResponseRateUnknown}
			}
			scores[i] = scorer.Score(caller, candidate, intent)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
