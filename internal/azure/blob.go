package azure

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"
)

// BlobStorageClient wraps Azure Blob Storage SDK for file operations
type BlobStorageClient struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewBlobStorageClient creates a new Azure Blob Storage client
func NewBlobStorageClient(accountName, accountKey, containerName string, logger *zap.Logger) (*BlobStorageClient, error) {
	if accountName == "" || accountKey == "" || containerName == "" {
		return nil, fmt.Errorf("accountName, accountKey, and containerName are required")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &BlobStorageClient{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// UploadPDF uploads a progress report under reports/
func (c *BlobStorageClient) UploadPDF(ctx context.Context, filename string, data []byte) (string, error) {
	return c.upload(ctx, ReportsPrefix+filename, data, "application/pdf")
}

// UploadBackup uploads a JSON data export under backups/
func (c *BlobStorageClient) UploadBackup(ctx context.Context, filename string, data []byte) (string, error) {
	return c.upload(ctx, BackupsPrefix+filename, data, "application/json")
}

func (c *BlobStorageClient) upload(ctx context.Context, blobName string, data []byte, contentType string) (string, error) {
	if blobName == ReportsPrefix || blobName == BackupsPrefix {
		return "", fmt.Errorf("filename is required")
	}

	c.logger.Info("uploading blob",
		zap.String("blob_name", blobName),
		zap.Int("size_bytes", len(data)),
	)

	blobClient := c.client.ServiceClient().NewContainerClient(c.containerName).NewBlockBlobClient(blobName)

	_, err := blobClient.UploadBuffer(ctx, data, &azblob.UploadBufferOptions{
		Metadata: map[string]*string{
			"contenttype": toPtr(contentType),
		},
	})
	if err != nil {
		c.logger.Error("failed to upload blob",
			zap.String("blob_name", blobName),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload %s: %w", blobName, err)
	}

	c.logger.Info("blob uploaded successfully", zap.String("blob_name", blobName))
	return blobName, nil
}

// Download downloads a blob by its full name
func (c *BlobStorageClient) Download(ctx context.Context, blobName string) ([]byte, error) {
	c.logger.Info("downloading blob", zap.String("blob_name", blobName))

	blobClient := c.client.ServiceClient().NewContainerClient(c.containerName).NewBlockBlobClient(blobName)

	downloadResponse, err := blobClient.DownloadStream(ctx, nil)
	if err != nil {
		c.logger.Error("failed to download blob",
			zap.String("blob_name", blobName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to download %s: %w", blobName, err)
	}
	defer downloadResponse.Body.Close()

	data, err := io.ReadAll(downloadResponse.Body)
	if err != nil {
		c.logger.Error("failed to read blob data",
			zap.String("blob_name", blobName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to read %s: %w", blobName, err)
	}

	c.logger.Info("blob downloaded successfully",
		zap.String("blob_name", blobName),
		zap.Int("size_bytes", len(data)),
	)
	return data, nil
}

// toPtr is a helper function to convert a value to a pointer
func toPtr(s string) *string {
	return &s
}
