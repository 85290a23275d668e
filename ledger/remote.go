package ledger

import (
	"context"

	"github.com/foundrly/matchcore/core"
)

// RemoteStore is the external swipe ledger service. Implementations are
// expected to be idempotent on the record's idempotency key; the local
// ledger may deliver the same record more than once across retries.
type RemoteStore interface {
	// Put persists a single swipe record.
	Put(ctx context.Context, record *core.SwipeRecord) error

	// PutBatch persists several records in one call, used by offline-sync
	// flushes. Partial failure fails the whole batch.
	PutBatch(ctx context.Context, records []*core.SwipeRecord) error
}
