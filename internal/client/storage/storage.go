// Package storage persists the signed-in user between process restarts.
//
// The user record is serialized to JSON and kept under a fixed key of the
// local metadata table; the auth token lives under a second key and is written
// in the same transaction. Missing or unreadable records are reported as
// "no session", never as an error.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ignitegym/internal/dbx"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

const (
	// KeyPrefix is shared by every session key; Clear removes all of them.
	KeyPrefix = "@ignitegym:"
	UserKey   = KeyPrefix + "user"
	TokenKey  = KeyPrefix + "token"
)

// SessionStorage is the persistence contract used by the session store.
// All methods are idempotent.
type SessionStorage interface {
	// Save replaces the stored user snapshot.
	Save(ctx context.Context, user models.User) error
	// SaveSession replaces the user snapshot and the auth token atomically.
	SaveSession(ctx context.Context, user models.User, token string) error
	// Load returns the last saved user, or false if there is none.
	Load(ctx context.Context) (models.User, bool)
	// LoadToken returns the stored auth token, or false if there is none.
	LoadToken(ctx context.Context) (string, bool)
	// Clear removes the stored user, token and any other session key.
	Clear(ctx context.Context) error
}

// SQLiteStorage implements SessionStorage on top of the metadata table.
type SQLiteStorage struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStorage(db *sql.DB, log logging.Logger) *SQLiteStorage {
	return &SQLiteStorage{db: db, log: log}
}

func (s *SQLiteStorage) Save(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := metadata.NewSQLiteRepository(s.db).Set(ctx, UserKey, data); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) SaveSession(ctx context.Context, user models.User, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, UserKey, data); err != nil {
			return err
		}
		if token == "" {
			return repo.Delete(ctx, TokenKey)
		}
		return repo.Set(ctx, TokenKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (models.User, bool) {
	data, ok := s.get(ctx, UserKey)
	if !ok {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "stored user is corrupt, ignoring", "error", err)
		return models.User{}, false
	}
	if !user.IsAuthenticated() {
		s.log.Warn(ctx, "stored user has no id, ignoring")
		return models.User{}, false
	}
	return user, true
}

func (s *SQLiteStorage) LoadToken(ctx context.Context) (string, bool) {
	data, ok := s.get(ctx, TokenKey)
	if !ok || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	n, err := metadata.NewSQLiteRepository(s.db).DeletePrefix(ctx, KeyPrefix)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Debug(ctx, "session cleared", "keys", n)
	return nil
}

func (s *SQLiteStorage) get(ctx context.Context, key string) ([]byte, bool) {
	data, err := metadata.NewSQLiteRepository(s.db).Get(ctx, key)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			s.log.Warn(ctx, "stored session is unreadable, ignoring", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}
