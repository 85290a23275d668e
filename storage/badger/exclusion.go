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

	"github.com/dgraph-io/badger/v4"
	"github.com/foundrly/matchcore/storage"
)

// ExclusionRepository implements storage.ExclusionRepository for BadgerDB.
//
// Two key spaces back it: one marking (caller, candidate) pairs, one marking
// seen idempotency keys. Replayed keys leave the exclusion set untouched,
// which gives swipe retries exactly-once effect on the set.
type ExclusionRepository struct {
	backend *Backend
}

var _ storage.ExclusionRepository = (*ExclusionRepository)(nil)

// NewExclusionRepository creates a new ExclusionRepository.
func NewExclusionRepository(backend *Backend) (storage.ExclusionRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ExclusionRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ExclusionRepository) Close() error {
	return nil
}

// Add marks the candidate as excluded for the caller. A replayed
// idempotency key is a no-op returning added=false.
func (r *ExclusionRepository) Add(ctx context.Context, callerId, candidateId, idempotencyKey string) (bool, error) {
	added := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		idemKey := makeExclusionIdemKey(callerId, idempotencyKey)
		if _, err := tx.Get(idemKey); err == nil {
			// Key already seen; replay has no effect.
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := tx.Set(idemKey, []byte{1}); err != nil {
			return err
		}

		exclKey := makeExclusionKey(callerId, candidateId)
		_, err := tx.Get(exclKey)
		switch err {
		case nil:
			// Candidate already excluded (e.g. swiped twice with distinct
			// keys); the set gains it only once.
		case badger.ErrKeyNotFound:
			if err := tx.Set(exclKey, []byte{1}); err != nil {
				return err
			}
			added = true
		default:
			return err
		}
		return tx.Commit()
	}, true)
	return added, err
}

// Contains reports whether the candidate is excluded for the caller.
func (r *ExclusionRepository) Contains(ctx context.Context, callerId, candidateId string) (bool, error) {
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeExclusionKey(callerId, candidateId))
		if err == nil {
			found = true
			return nil
		}
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	}, false)
	return found, err
}

// All returns every excluded candidate ID for the caller.
func (r *ExclusionRepository) All(ctx context.Context, callerId string) ([]string, error) {
	var ids []string
	prefix := makeExclusionPrefix(callerId)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	}, false)
	return ids, err
}
