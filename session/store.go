// Package session persists the identity behind each login so a restart
// does not sign everybody out.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"wms-finance/models"
	"wms-finance/types"
)

// KeyPrefix namespaces identity snapshots; the session id follows it.
const KeyPrefix = "currentUser:"

var ErrSessionNotFound = errors.New("session not found")

type Options struct {
	Path     string
	InMemory bool
	// TTL is how long a snapshot lives; it matches the token lifetime.
	TTL    time.Duration
	Logger *zap.Logger
}

type Store struct {
	db     *badger.DB
	ttl    time.Duration
	logger *zap.Logger
}

func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bopts := badger.DefaultOptions(opts.Path).WithLogger(badgerLogger{logger.Sugar()})
	if opts.InMemory {
		bopts = bopts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return &Store{db: db, ttl: opts.TTL, logger: logger}, nil
}

func key(sessionID string) []byte {
	return []byte(KeyPrefix + sessionID)
}

// Save stores a snapshot of identity under sessionID, replacing any
// previous one.
func (s *Store) Save(sessionID string, identity models.User) error {
	raw, err := json.Marshal(identity.Snapshot())
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key(sessionID), raw)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func (s *Store) Load(sessionID string) (models.User, error) {
	var identity models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(sessionID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &identity)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return identity, ErrSessionNotFound
	}
	if err != nil {
		return identity, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return identity, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(sessionID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(sessionID))
	})
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

// Count returns the number of live sessions.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(KeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// Refresh rewrites every snapshot of identity's user, keeping each
// session's expiry. It returns how many sessions were touched.
func (s *Store) Refresh(identity models.User) (int, error) {
	raw, err := json.Marshal(identity.Snapshot())
	if err != nil {
		return 0, fmt.Errorf("encode identity %s: %w", identity.ID, err)
	}
	n := 0
	err = s.eachOf(identity.ID, func(txn *badger.Txn, m match) error {
		entry := badger.NewEntry(m.key, raw)
		entry.ExpiresAt = m.expiresAt
		n++
		return txn.SetEntry(entry)
	})
	if err != nil {
		return 0, fmt.Errorf("refresh sessions of %s: %w", identity.ID, err)
	}
	return n, nil
}

// Revoke deletes every session of the user with id.
func (s *Store) Revoke(id types.SnowflakeID) (int, error) {
	n := 0
	err := s.eachOf(id, func(txn *badger.Txn, m match) error {
		n++
		return txn.Delete(m.key)
	})
	if err != nil {
		return 0, fmt.Errorf("revoke sessions of %s: %w", id, err)
	}
	return n, nil
}

type match struct {
	key       []byte
	expiresAt uint64
}

func (s *Store) eachOf(id types.SnowflakeID, fn func(*badger.Txn, match) error) error {
	return s.db.Update(func(txn *badger.Txn) error {
		matched, err := s.scan(txn, id)
		if err != nil {
			return err
		}
		for _, m := range matched {
			if err := fn(txn, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) scan(txn *badger.Txn, id types.SnowflakeID) ([]match, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(KeyPrefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var matched []match
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		var owner struct {
			ID types.SnowflakeID `json:"id"`
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &owner)
		}); err != nil {
			s.logger.Warn("skipping unreadable session", zap.ByteString("key", item.Key()), zap.Error(err))
			continue
		}
		if owner.ID == id {
			matched = append(matched, match{key: item.KeyCopy(nil), expiresAt: item.ExpiresAt()})
		}
	}
	return matched, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
