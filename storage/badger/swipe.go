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


package badger

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
)

// DefaultQueueCapacity bounds the per-caller durable swipe queue.
// On overflow the oldest entry is evicted so a swipe never fails.
const DefaultQueueCapacity = 50

// SwipeQueueRepository implements storage.SwipeQueueRepository for BadgerDB.
type SwipeQueueRepository struct {
	backend  *Backend
	seq      *badger.Sequence
	capacity int
	logger   *slog.Logger
}

var _ storage.SwipeQueueRepository = (*SwipeQueueRepository)(nil)

// NewSwipeQueueRepository creates a new SwipeQueueRepository with the
// default capacity.
func NewSwipeQueueRepository(backend *Backend) (storage.SwipeQueueRepository, error) {
	return NewSwipeQueueRepositoryWithCapacity(backend, DefaultQueueCapacity)
}

// NewSwipeQueueRepositoryWithCapacity creates a SwipeQueueRepository with a
// custom per-caller capacity.
func NewSwipeQueueRepositoryWithCapacity(backend *Backend, capacity int) (storage.SwipeQueueRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}

	seq, err := backend.GetSequence(swipeQueueSeq)
	if err != nil {
		return nil, err
	}

	return &SwipeQueueRepository{
		backend:  backend,
		seq:      seq,
		capacity: capacity,
		logger:   slog.Default().With("component", "swipe-queue"),
	}, nil
}

// Close releases the position sequence.
func (r *SwipeQueueRepository) Close() error {
	return r.seq.Release()
}

// Append adds a record to the tail of the caller's queue, evicting the
// oldest entry if the queue is at capacity.
func (r *SwipeQueueRepository) Append(ctx context.Context, record *core.SwipeRecord) error {
	if err := core.ValidateSwipeRecord(record); err != nil {
		return err
	}

	position, err := r.seq.Next()
	if err != nil {
		return err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if position == 0 {
		position, err = r.seq.Next()
		if err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		length, oldestKey, err := r.scanQueue(tx, record.CallerId)
		if err != nil {
			return err
		}

		if length >= r.capacity && oldestKey != nil {
			r.logger.Warn("swipe queue at capacity, evicting oldest entry",
				"callerId", record.CallerId, "capacity", r.capacity)
			if err := tx.Delete(oldestKey); err != nil {
				return err
			}
		}

		if record.InsertedAt.IsZero() {
			record.InsertedAt = time.Now().UTC()
		}
		if record.Id == 0 {
			record.Id = core.ID(position)
		}

		key := makeSwipeQueueKey(record.CallerId, position)
		if err := tx.Set(key, storage.MarshalSwipeRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// OldestN returns up to n records from the head of the caller's queue.
func (r *SwipeQueueRepository) OldestN(ctx context.Context, callerId string, n int) ([]storage.QueuedSwipe, error) {
	var results []storage.QueuedSwipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSwipeQueuePrefix(callerId)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < n; iter.Next() {
			item := iter.Item()
			position := queuePositionFromKey(item.Key())

			err := item.Value(func(val []byte) error {
				record, unmarshalErr := storage.UnmarshalSwipeRecord(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				results = append(results, storage.QueuedSwipe{
					Position: position,
					Record:   record,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return results, err
}

// Remove deletes the entry at the given queue position.
func (r *SwipeQueueRepository) Remove(ctx context.Context, callerId string, position uint64) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSwipeQueueKey(callerId, position)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Len returns the number of queued records for the caller.
func (r *SwipeQueueRepository) Len(ctx context.Context, callerId string) (int, error) {
	var length int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		length, _, err = r.scanQueue(tx, callerId)
		return err
	}, false)
	return length, err
}

// scanQueue returns the queue length and the key of its oldest entry.
func (r *SwipeQueueRepository) scanQueue(tx *badger.Txn, callerId string) (int, []byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeSwipeQueuePrefix(callerId)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	length := 0
	var oldestKey []byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		if oldestKey == nil {
			oldestKey = iter.Item().KeyCopy(nil)
		}
		length++
	}
	return length, oldestKey, nil
}
