package azure

import "context"

// Blob name prefixes
const (
	ReportsPrefix = "reports/"
	BackupsPrefix = "backups/"
)

// BlobStorage stores generated progress reports and data backups
type BlobStorage interface {
	UploadPDF(ctx context.Context, filename string, data []byte) (string, error)
	UploadBackup(ctx context.Context, filename string, data []byte) (string, error)
	Download(ctx context.Context, blobName string) ([]byte, error)
}

// Ensure both implementations satisfy BlobStorage
var (
	_ BlobStorage = (*BlobStorageClient)(nil)
	_ BlobStorage = (*MemoryBlobStorage)(nil)
)
