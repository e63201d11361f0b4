package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
)

// GCSConfig bucket settings.
type GCSConfig struct {
	Bucket     string
	PublicBase string // e.g. https://storage.googleapis.com
	// CredentialsJSON service account key; empty falls back to application default credentials.
	CredentialsJSON string
}

// GCSStore keeps images in a Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	base   string
}

var _ ports.ImageStore = (*GCSStore)(nil)

// NewGCSStore opens the client and checks the bucket is reachable.
func NewGCSStore(ctx context.Context, cfg GCSConfig) (*GCSStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	if _, err := client.Bucket(cfg.Bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("gcs bucket %q not accessible: %w", cfg.Bucket, err)
	}
	base := strings.TrimRight(cfg.PublicBase, "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return &GCSStore{client: client, bucket: cfg.Bucket, base: base + "/" + cfg.Bucket}, nil
}

func (s *GCSStore) Save(ctx context.Context, folder string, file dto.FileUpload) (string, error) {
	img, err := normalize(file)
	if err != nil {
		return "", err
	}
	object := cleanFolder(folder) + "/" + img.Name

	wc := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = img.ContentType
	wc.CacheControl = "public, max-age=86400"
	if _, err := wc.Write(img.Data); err != nil {
		wc.Close()
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return s.base + "/" + object, nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	object, ok := strings.CutPrefix(url, s.base+"/")
	if !ok || object == "" {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
