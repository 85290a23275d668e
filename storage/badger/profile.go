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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (storage.ProfileRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ProfileRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *ProfileRepository) Close() error {
	return nil
}

// PutProfiles inserts or replaces candidate profiles.
func (r *ProfileRepository) PutProfiles(ctx context.Context, profiles ...*core.CandidateProfile) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			if err := core.ValidateProfile(profile); err != nil {
				return err
			}
			if profile.UpdatedAt.IsZero() {
				profile.UpdatedAt = time.Now().UTC()
			}
			key := makeProfileKey(profile.Id)
			if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a single profile by candidate ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, candidateId string) (*core.CandidateProfile, error) {
	var result *core.CandidateProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeProfileKey(candidateId))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalProfile(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// GetProfiles retrieves multiple profiles by candidate ID.
// Missing profiles are skipped silently.
func (r *ProfileRepository) GetProfiles(ctx context.Context, candidateIds ...string) ([]*core.CandidateProfile, error) {
	results := make([]*core.CandidateProfile, 0, len(candidateIds))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range candidateIds {
			item, err := tx.Get(makeProfileKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				profile, unmarshalErr := storage.UnmarshalProfile(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				results = append(results, profile)
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

// IterateProfiles calls fn for each stored profile in key order.
func (r *ProfileRepository) IterateProfiles(ctx context.Context, afterId string, fn func(*core.CandidateProfile) (bool, error)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		start := opts.Prefix
		if afterId != "" {
			// Seek past the given ID
			start = append(makeProfileKey(afterId), 0)
		}

		for iter.Seek(start); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var profile *core.CandidateProfile
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				profile, unmarshalErr = storage.UnmarshalProfile(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}

			cont, err := fn(profile)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
		return nil
	}, false)
}

// DeleteProfile removes a profile.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, candidateId string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(candidateId)
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

// Count returns the number of stored profiles.
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}
