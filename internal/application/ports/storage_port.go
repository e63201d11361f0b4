package ports

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
)

// ImageStore persists uploaded images and returns the public URL.
type ImageStore interface {
	// Save validates and normalises the image, stores it under folder and returns its public URL.
	Save(ctx context.Context, folder string, file dto.FileUpload) (string, error)
	// Delete removes an image previously returned by Save. Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}
