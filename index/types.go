package index

import "context"

// SparseVector is an index→weight mapping capturing exact and near-exact
// term overlap. Indices are sorted ascending and unique.
type SparseVector struct {
	Indices []uint32
	Values  []float32
}

// IsZero reports whether the sparse vector carries no terms.
func (v SparseVector) IsZero() bool {
	return len(v.Indices) == 0
}

// Record is one candidate's entry in the vector index.
type Record struct {
	// ID is the candidate identifier.
	ID string

	// Dense is the semantic embedding. Nil when vectorization failed;
	// such records are excluded from dense-similarity queries but remain
	// eligible for keyword filtering.
	Dense []float32

	// Sparse captures term overlap (skill names, institutions).
	Sparse SparseVector

	// Payload carries neutral metadata pushed down for filtering:
	// "content_hash" (string), "skills" ([]string), "location" (string).
	Payload map[string]any
}

// Query is a fused nearest-neighbor query against the index.
type Query struct {
	// Dense is the query embedding. May be nil for keyword-only queries.
	Dense []float32

	// Sparse is the query's term-weight vector.
	Sparse SparseVector

	// Exclude lists candidate IDs that must not appear in results. The
	// adapter pushes this down to the index rather than post-filtering,
	// so unbounded exclusion sets don't force a full scan.
	Exclude []string

	// MustSkills are hard skill filters: every returned candidate carries
	// all of them.
	MustSkills []string

	// Location is a hard location filter, or empty.
	Location string

	// Limit caps the number of hits.
	Limit int
}

// Hit is one ranked result of a fused query.
type Hit struct {
	ID    string
	Score float32
}

// VectorIndex is the adapter boundary to a vector database. This is the
// only interface vendor adapters implement; the engine's internal types
// stay vendor-neutral. Implementations must produce deterministic rankings
// for identical inputs and be safe for concurrent use.
type VectorIndex interface {
	// Upsert stores or replaces index records.
	Upsert(ctx context.Context, records []Record) error

	// Search performs a fused dense+sparse nearest-neighbor query.
	Search(ctx context.Context, query Query) ([]Hit, error)

	// Fetch returns the stored records for the given IDs, without vectors
	// necessarily populated; used for content-hash lookups. Missing IDs
	// are skipped.
	Fetch(ctx context.Context, ids ...string) ([]Record, error)

	// Delete removes candidates from the index. Unknown IDs are ignored.
	Delete(ctx context.Context, ids ...string) error

	// Close releases the adapter's resources.
	Close() error
}
