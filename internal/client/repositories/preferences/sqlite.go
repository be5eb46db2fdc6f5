package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mymemory/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
	// beginner is nil once the repository is bound to a transaction.
	beginner dbx.Beginner
}

// NewSQLiteRepository binds a repository to db. When db is a *sql.DB the
// repository can open its own transactions and checkpoint the WAL.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	r := &SQLiteRepository{db: db}
	if b, ok := db.(dbx.Beginner); ok {
		r.beginner = b
	}
	return r
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences[%s]: %w", key, err)
	}
	// An empty BLOB scans as nil; nil is reserved for absent keys.
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set preferences[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete preferences[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences`)
	if err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preferences row: %w", err)
		}
		if value == nil {
			value = []byte{}
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences rows: %w", err)
	}

	return result, nil
}

// Flush checkpoints the write-ahead log into the main database file. Without
// WAL journaling the pragma reports -1 pages and is harmless.
func (r *SQLiteRepository) Flush(ctx context.Context) error {
	if r.beginner == nil {
		// commit of the enclosing transaction does the work
		return nil
	}
	var busy, logPages, checkpointed int
	err := r.db.QueryRowContext(ctx, `PRAGMA wal_checkpoint(FULL)`).Scan(&busy, &logPages, &checkpointed)
	if err != nil {
		return fmt.Errorf("failed to flush preferences: %w", err)
	}
	if busy != 0 {
		return errors.New("failed to flush preferences: checkpoint blocked")
	}
	return nil
}

func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	if r.beginner == nil {
		return fn(ctx, r)
	}
	return dbx.WithTx(ctx, r.beginner, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &SQLiteRepository{db: tx})
	})
}
