package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
)

// LocalStore writes images below Dir; the HTTP server exposes Dir at PublicPath.
type LocalStore struct {
	dir        string
	publicPath string
}

var _ ports.ImageStore = (*LocalStore)(nil)

// NewLocalStore creates dir when missing.
func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &LocalStore{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

func (s *LocalStore) Save(ctx context.Context, folder string, file dto.FileUpload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := normalize(file)
	if err != nil {
		return "", err
	}
	folder = cleanFolder(folder)
	if err := os.MkdirAll(filepath.Join(s.dir, folder), 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, folder, img.Name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.publicPath, folder, img.Name), nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.publicPath+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
