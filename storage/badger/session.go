package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/foundrly/matchcore/core"
	"github.com/foundrly/matchcore/storage"
)

// SessionRepository implements storage.SessionRepository for BadgerDB.
type SessionRepository struct {
	backend *Backend
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(backend *Backend) (storage.SessionRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &SessionRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *SessionRepository) Close() error {
	return nil
}

// PutSession overwrites the caller's card session.
func (r *SessionRepository) PutSession(ctx context.Context, session *core.CardSession) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		session.UpdatedAt = time.Now().UTC()
		key := makeSessionKey(session.CallerId)
		if err := tx.Set(key, storage.MarshalCardSession(session)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSession retrieves the caller's card session.
// Returns nil, nil when no card is displayed.
func (r *SessionRepository) GetSession(ctx context.Context, callerId string) (*core.CardSession, error) {
	var session *core.CardSession
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSessionKey(callerId))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			session, unmarshalErr = storage.UnmarshalCardSession(val)
			return unmarshalErr
		})
	}, false)
	return session, err
}

// DeleteSession clears the caller's card session.
func (r *SessionRepository) DeleteSession(ctx context.Context, callerId string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeSessionKey(callerId)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
