package search

import (
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
)

// SearchMonitor provides hooks to observe the tiered search process.
// Implement this interface to track which tiers ran and what each returned.
type SearchMonitor interface {
	Start(intent *core.SearchIntent)
	TierStart(tier int)
	AfterTier(tier int, hits []index.Hit)
	DuplicateHit(tier int, candidateId string)
	TierFailed(tier int, err error)
	Finish(results []*core.RankedCandidate)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.SearchIntent)            {}
func (n *noopMonitor) TierStart(_ int)                       {}
func (n *noopMonitor) AfterTier(_ int, _ []index.Hit)        {}
func (n *noopMonitor) DuplicateHit(_ int, _ string)          {}
func (n *noopMonitor) TierFailed(_ int, _ error)             {}
func (n *noopMonitor) Finish(_ []*core.RankedCandidate)      {}
