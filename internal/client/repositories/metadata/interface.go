package metadata

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("metadata key not found")
	// ErrEmptyPrefix is returned by DeletePrefix for an empty prefix.
	ErrEmptyPrefix = errors.New("metadata prefix is empty")
)

// Repository is a durable key/value store for small client-side records.
// Set replaces any previous value; deletes are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

var _ Repository = (*SQLiteRepository)(nil)
