package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)
`

// PostgresStore keeps the key-value data in a single PostgreSQL table
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the kv_store table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createKVTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

// Get reads a value by key
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("failed to read key", zap.Error(err), zap.String("key", key))
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts a value by key
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		s.logger.Error("failed to write key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Remove deletes a key
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// RemoveKeys deletes the keys inside one transaction
func (s *PostgresStore) RemoveKeys(ctx context.Context, keys ...string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, key := range keys {
		if _, err := tx.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("keys removed", zap.Strings("keys", keys))
	return nil
}

var _ Store = (*PostgresStore)(nil)
