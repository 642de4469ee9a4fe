package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte(`{"id":"1"}`)))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":"1"}`), v)
}

func TestGet_NotExists_ReturnsErrNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	_, err := r.Get(ctx, "x")
	require.ErrorIs(t, err, ErrNotFound)

	// second delete is a no-op
	require.NoError(t, r.Delete(ctx, "x"))
}

func TestDeletePrefix_RemovesOnlyMatchingKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "@app:user", []byte{1}))
	require.NoError(t, r.Set(ctx, "@app:token", []byte{2}))
	require.NoError(t, r.Set(ctx, "@other:user", []byte{3}))
	require.NoError(t, r.Set(ctx, "@app", []byte{4}))

	n, err := r.DeletePrefix(ctx, "@app:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = r.Get(ctx, "@app:user")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(ctx, "@app:token")
	require.ErrorIs(t, err, ErrNotFound)

	v, err := r.Get(ctx, "@other:user")
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, v)
	_, err = r.Get(ctx, "@app")
	require.NoError(t, err)

	n, err = r.DeletePrefix(ctx, "@app:")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeletePrefix_EmptyPrefixRefused(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "k", []byte{1}))

	_, err := r.DeletePrefix(ctx, "")
	require.ErrorIs(t, err, ErrEmptyPrefix)

	_, err = r.Get(ctx, "k")
	require.NoError(t, err)
}

// ---- driver failures (sqlmock) ----

func newMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

var errDriver = errors.New("disk I/O error")

func TestGet_DBErrorWrapped(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).WithArgs("k").WillReturnError(errDriver)

	v, err := r.Get(context.Background(), "k")
	require.ErrorIs(t, err, errDriver)
	require.Nil(t, v)
	require.Contains(t, err.Error(), `get "k"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DBErrorWrapped(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs("k", []byte("v")).WillReturnError(errDriver)

	err := r.Set(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, errDriver)
	require.Contains(t, err.Error(), `set "k"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_DBErrorWrapped(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM metadata WHERE key = \?`).WithArgs("k").WillReturnError(errDriver)

	err := r.Delete(context.Background(), "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), `delete "k"`)
}

func TestDeletePrefix_DBErrorWrapped(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM metadata WHERE substr\(key, 1, \?\) = \?`).
		WithArgs(int64(5), "@app:").
		WillReturnError(errDriver)

	_, err := r.DeletePrefix(context.Background(), "@app:")
	require.ErrorIs(t, err, errDriver)
	require.Contains(t, err.Error(), `delete prefix "@app:"`)
	require.NoError(t, mock.ExpectationsWereMet())
}
