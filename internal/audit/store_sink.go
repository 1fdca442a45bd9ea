package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/storage"
)

// maxStoredEntries bounds the trail kept in the key-value store
const maxStoredEntries = 500

// StoreSink keeps the audit trail as a JSON list in a storage.Store
type StoreSink struct {
	store storage.Store
	mu    sync.Mutex
}

// NewStoreSink creates a new StoreSink
func NewStoreSink(store storage.Store) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) load(ctx context.Context) ([]Entry, error) {
	data, ok, err := s.store.Get(ctx, storage.KeyAuditTrail)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit trail: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit trail: %w", err)
	}
	return entries, nil
}

// Write prepends the entry, dropping the oldest beyond the retention limit
func (s *StoreSink) Write(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		// a corrupt trail is restarted rather than blocking the operation
		entries = nil
	}

	entries = append([]Entry{entry}, entries...)
	if len(entries) > maxStoredEntries {
		entries = entries[:maxStoredEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode audit trail: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyAuditTrail, data); err != nil {
		return fmt.Errorf("failed to save audit trail: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *StoreSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
