package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/foundrly/matchcore/ai"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/index"
)

// retriever builds and executes per-tier index queries. The query text is
// embedded once per search and the dense vector reused across every tier;
// only the filters and sparse terms vary with relaxation.
type retriever struct {
	embedder ai.Embedder
	store    index.VectorIndex
	logger   *slog.Logger
}

// queryPlan is the tier-independent part of a search, computed once.
type queryPlan struct {
	intent  *core.SearchIntent
	dense   []float32
	exclude []string
	limit   int
}

// plan embeds the raw query and fixes the parts shared by all tiers. An
// embedding failure degrades to a sparse-only plan rather than failing the
// search.
func (r *retriever) plan(ctx context.Context, intent *core.SearchIntent, exclude []string, limit int) *queryPlan {
	var dense []float32
	if intent.RawQuery != "" {
		vec, err := r.embedder.EmbedText(ctx, intent.RawQuery)
		if err != nil {
			r.logger.Warn("query embedding failed, retrieval degrades to keyword-only", "error", err)
		} else {
			dense = vec
		}
	}
	return &queryPlan{
		intent:  intent,
		dense:   dense,
		exclude: exclude,
		limit:   limit,
	}
}

// tierQuery builds the index query for one relaxation tier.
func (p *queryPlan) tierQuery(tier int) index.Query {
	intent := p.intent
	q := index.Query{
		Dense:   p.dense,
		Exclude: p.exclude,
		Limit:   p.limit,
	}

	queryTerms := tokenizeAndFilter(intent.RawQuery)

	switch tier {
	case 0:
		q.MustSkills = normalizeSkills(intent.RequiredSkills)
		q.Location = strings.ToLower(strings.TrimSpace(intent.LocationHint))
		q.Sparse = index.QuerySparseVector(intent.RequiredSkills, intent.PreferredSkills, queryTerms)
	case 1:
		q.MustSkills = normalizeSkills(intent.RequiredSkills)
		q.Sparse = index.QuerySparseVector(intent.RequiredSkills, intent.PreferredSkills, queryTerms)
	case 2:
		if skills := normalizeSkills(intent.RequiredSkills); len(skills) > 0 {
			q.MustSkills = skills[:1]
		}
		// Preferred skills stop being a tiebreaker and join the query
		// terms outright.
		folded := append([]string{}, queryTerms...)
		folded = append(folded, intent.PreferredSkills...)
		q.Sparse = index.QuerySparseVector(intent.RequiredSkills, nil, folded)
	default:
		q.Sparse = index.QuerySparseVector(nil, nil, queryTerms)
	}
	return q
}

// retrieve executes one tier's query.
func (r *retriever) retrieve(ctx context.Context, plan *queryPlan, tier int) ([]index.Hit, error) {
	return r.store.Search(ctx, plan.tierQuery(tier))
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
