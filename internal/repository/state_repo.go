package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schoolhub/internal/database"
)

// SQLStateStore keeps app state in the app_state table
type SQLStateStore struct {
	db database.DBTX
}

// NewSQLStateStore creates a store over db (a *database.DB or *database.Tx)
func NewSQLStateStore(db database.DBTX) *SQLStateStore {
	return &SQLStateStore{db: db}
}

// Get retrieves a value by key
func (r *SQLStateStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT state_value FROM app_state WHERE state_key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get state %q: %w", key, err)
	}
	return value, true, nil
}

// Set updates or inserts a value
func (r *SQLStateStore) Set(ctx context.Context, key, value string) error {
	query := r.db.GetDialect().UpsertStateQuery()
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set state %q: %w", key, err)
	}
	return nil
}

// Delete removes a key; missing keys are not an error
func (r *SQLStateStore) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE state_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}

// DeletePrefix removes every key starting with prefix
func (r *SQLStateStore) DeletePrefix(ctx context.Context, prefix string) error {
	query := `DELETE FROM app_state WHERE SUBSTR(state_key, 1, ?) = ?`
	if _, err := r.db.ExecContext(ctx, query, len(prefix), prefix); err != nil {
		return fmt.Errorf("failed to delete state prefix %q: %w", prefix, err)
	}
	return nil
}

// List returns every key/value starting with prefix
func (r *SQLStateStore) List(ctx context.Context, prefix string) (map[string]string, error) {
	query := `SELECT state_key, state_value FROM app_state WHERE SUBSTR(state_key, 1, ?) = ? ORDER BY state_key`
	rows, err := r.db.QueryContext(ctx, query, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list state: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan state row: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}
