// Package preferences persists flat key/value pairs for the local client.
//
// Values are opaque bytes. A missing key reads as (nil, nil). Two
// implementations are provided: SQLiteRepository for the on-disk database and
// MemoryRepository for tests and throwaway sessions.
package preferences

import (
	"context"
)

type Repository interface {
	// Get returns the value stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or overwrites key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Flush forces completed writes to durable storage.
	Flush(ctx context.Context) error
	// WithTx runs fn against a repository whose writes are applied all at
	// once when fn returns nil and discarded otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
