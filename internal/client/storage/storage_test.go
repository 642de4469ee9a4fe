package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/logging"

	_ "modernc.org/sqlite"
)

func newStorage(t *testing.T) (*SQLiteStorage, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// single connection: each new one would open its own :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return NewSQLiteStorage(db, discardLogger()), db
}

func discardLogger() logging.Logger {
	return logging.NewNopLogger()
}

func TestLoad_EmptyStore(t *testing.T) {
	s, _ := newStorage(t)

	u, ok := s.Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, models.User{}, u)

	_, ok = s.LoadToken(context.Background())
	assert.False(t, ok)
}

func TestSave_ThenLoad_RoundTrip(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()
	user := models.User{ID: "1", Name: "A", Email: "a@b.com"}

	require.NoError(t, s.Save(ctx, user))
	require.NoError(t, s.Save(ctx, user)) // idempotent

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestSaveSession_StoresUserAndToken(t *testing.T) {
	s, db := newStorage(t)
	ctx := context.Background()
	user := models.User{ID: "1", Name: "A", Email: "a@b.com"}

	require.NoError(t, s.SaveSession(ctx, user, "tkn"))

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, UserKey).Scan(&raw))
	var decoded models.User
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, user, decoded)

	tok, ok := s.LoadToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "tkn", tok)
}

func TestSaveSession_EmptyTokenRemovesStaleToken(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, models.User{ID: "1"}, "old"))
	require.NoError(t, s.SaveSession(ctx, models.User{ID: "2"}, ""))

	_, ok := s.LoadToken(ctx)
	assert.False(t, ok)
}

func TestLoad_CorruptDataIsAbsent(t *testing.T) {
	s, db := newStorage(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)`, UserKey, []byte("{not json"))
	require.NoError(t, err)

	_, ok := s.Load(context.Background())
	assert.False(t, ok)
}

func TestLoad_UserWithoutIDIsAbsent(t *testing.T) {
	s, _ := newStorage(t)
	require.NoError(t, s.Save(context.Background(), models.User{Name: "ghost"}))

	_, ok := s.Load(context.Background())
	assert.False(t, ok)
}

func TestClear_IsIdempotent(t *testing.T) {
	s, _ := newStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, models.User{ID: "1"}, "tkn"))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.Load(ctx)
	assert.False(t, ok)
	_, ok = s.LoadToken(ctx)
	assert.False(t, ok)
}

func TestClear_RemovesEverySessionKeyOnly(t *testing.T) {
	s, db := newStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, models.User{ID: "1"}, "tkn"))
	_, err := db.Exec(`INSERT INTO metadata (key, value) VALUES (?, ?), (?, ?)`,
		KeyPrefix+"draft", []byte("x"), "settings", []byte("y"))
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))

	var keys []string
	rows, err := db.Query(`SELECT key FROM metadata`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		keys = append(keys, k)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"settings"}, keys)
}

func TestClear_DriverErrorIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(sql.ErrConnDone)

	s := NewSQLiteStorage(db, discardLogger())
	err = s.Clear(context.Background())
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_DriverErrorIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO metadata`).WillReturnError(sql.ErrConnDone)

	s := NewSQLiteStorage(db, discardLogger())
	err = s.Save(context.Background(), models.User{ID: "1"})
	require.ErrorIs(t, err, sql.ErrConnDone)
}

func TestSaveSession_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	s := NewSQLiteStorage(db, discardLogger())
	err = s.SaveSession(context.Background(), models.User{ID: "1"}, "tkn")
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_DriverErrorIsAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM metadata`).WillReturnError(sql.ErrConnDone)

	s := NewSQLiteStorage(db, discardLogger())
	_, ok := s.Load(context.Background())
	assert.False(t, ok)
}
