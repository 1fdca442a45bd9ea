package azure

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// MemoryBlobStorage keeps blobs in process memory.
// It is used when no Azure account is configured.
type MemoryBlobStorage struct {
	blobs  map[string][]byte
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryBlobStorage creates a new empty MemoryBlobStorage
func NewMemoryBlobStorage(logger *zap.Logger) *MemoryBlobStorage {
	return &MemoryBlobStorage{
		blobs:  make(map[string][]byte),
		logger: logger,
	}
}

// UploadPDF stores a progress report under reports/
func (m *MemoryBlobStorage) UploadPDF(ctx context.Context, filename string, data []byte) (string, error) {
	return m.put(ctx, ReportsPrefix, filename, data)
}

// UploadBackup stores a JSON data export under backups/
func (m *MemoryBlobStorage) UploadBackup(ctx context.Context, filename string, data []byte) (string, error) {
	return m.put(ctx, BackupsPrefix, filename, data)
}

func (m *MemoryBlobStorage) put(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" {
		return "", fmt.Errorf("filename is required")
	}

	blobName := prefix + filename

	m.mu.Lock()
	m.blobs[blobName] = bytes.Clone(data)
	m.mu.Unlock()

	m.logger.Debug("blob stored in memory",
		zap.String("blob_name", blobName),
		zap.Int("size_bytes", len(data)),
	)
	return blobName, nil
}

// Download returns a copy of a stored blob
func (m *MemoryBlobStorage) Download(ctx context.Context, blobName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[blobName]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", blobName)
	}
	return bytes.Clone(data), nil
}

// Names lists the stored blob names in order
func (m *MemoryBlobStorage) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
