package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/storage"
)

// loadJSON decodes the value stored under key into dst.
// It reports false when the key is absent, unreadable or malformed; the
// last two are logged at warn level and never returned as errors.
func loadJSON(ctx context.Context, store storage.Store, logger *zap.Logger, key string, dst any) bool {
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to read stored value, using empty state",
			zap.Error(err),
			zap.String("key", key),
		)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("malformed stored value, using empty state",
			zap.Error(err),
			zap.String("key", key),
		)
		return false
	}
	return true
}

func saveJSON(ctx context.Context, store storage.Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
