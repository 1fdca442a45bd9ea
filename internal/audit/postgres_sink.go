package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresSink writes audit entries to the audit_logs table
type PostgresSink struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresSink creates a new PostgresSink
func NewPostgresSink(db *pgxpool.Pool, logger *zap.Logger) *PostgresSink {
	return &PostgresSink{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the audit_logs table if it does not exist
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS audit_logs (
			id TEXT PRIMARY KEY,
			operation_type TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			resource_id TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			ip_address TEXT,
			user_agent TEXT,
			additional_data JSONB
		)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}
	return nil
}

// Write inserts the entry
func (s *PostgresSink) Write(ctx context.Context, entry Entry) error {
	var additional []byte
	if entry.AdditionalData != nil {
		var err error
		additional, err = json.Marshal(entry.AdditionalData)
		if err != nil {
			return fmt.Errorf("failed to encode audit data: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (
			id, operation_type, resource_type, resource_id,
			timestamp, ip_address, user_agent, additional_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(ctx, query,
		entry.ID,
		entry.OperationType,
		entry.ResourceType,
		entry.ResourceID,
		entry.Timestamp,
		entry.IPAddress,
		entry.UserAgent,
		additional,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit log to database: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *PostgresSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, operation_type, resource_type, resource_id,
		       timestamp, ip_address, user_agent
		FROM audit_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ip, agent *string
		if err := rows.Scan(&e.ID, &e.OperationType, &e.ResourceType, &e.ResourceID, &e.Timestamp, &ip, &agent); err != nil {
			s.logger.Error("failed to scan audit log", zap.Error(err))
			continue
		}
		if ip != nil {
			e.IPAddress = *ip
		}
		if agent != nil {
			e.UserAgent = *agent
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
