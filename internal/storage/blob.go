// Package storage uploads assessment artifacts to Azure Blob Storage.
// Upload is optional: assessment runs are complete without it, and any
// failure here never invalidates the local artifacts.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// Uploader pushes scorecard artifacts to a blob container.
type Uploader struct {
	client    *azblob.Client
	container string
}

// NewUploader creates an Uploader against a storage account service URL
// (e.g. https://<account>.blob.core.windows.net) using the ambient Azure
// credential chain.
func NewUploader(serviceURL, container string) (*Uploader, error) {
	if serviceURL == "" || container == "" {
		return nil, fmt.Errorf("storage service URL and container are both required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving Azure credential: %w", err)
	}

	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}

	return &Uploader{client: client, container: container}, nil
}

// UploadFile uploads a local artifact under the given blob prefix and returns
// the blob name used.
func (u *Uploader) UploadFile(ctx context.Context, prefix, localPath string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("reading artifact %s: %w", localPath, err)
	}

	blobName := path.Join(prefix, filepath.Base(localPath))
	contentType := "application/json"
	if filepath.Ext(localPath) == ".gz" {
		contentType = "application/gzip"
	} else if filepath.Ext(localPath) == ".md" {
		contentType = "text/markdown"
	}

	_, err = u.client.UploadBuffer(ctx, u.container, blobName, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(contentType),
		},
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", blobName, err)
	}

	slog.Info("uploaded artifact", "container", u.container, "blob", blobName, "bytes", len(data))
	return blobName, nil
}
