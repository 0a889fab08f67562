package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/dbx"
)

type SQLiteRepository struct {
	db    dbx.DBTX
	scope string
}

// NewSQLiteRepository returns a repository confined to scope. Records of other
// scopes are neither visible nor affected.
func NewSQLiteRepository(db dbx.DBTX, scope string) *SQLiteRepository {
	return &SQLiteRepository{db: db, scope: scope}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE scope = ? AND key = ?`, r.scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s/%s]: %w", r.scope, key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (scope, key, value) VALUES (?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value
	`, r.scope, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s/%s]: %w", r.scope, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE scope = ? AND key = ?`, r.scope, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s/%s]: %w", r.scope, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE scope = ?`, r.scope)
	if err != nil {
		return fmt.Errorf("failed to clear metadata[%s]: %w", r.scope, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata WHERE scope = ?`, r.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata[%s]: %w", r.scope, err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}
