package storage

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{R: 200, A: 255}), imaging.PNG))
	return buf.Bytes()
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "uploads")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "products", dto.FileUpload{Filename: "milk.png", ContentType: "image/png", Data: pngOf(t, 40, 20)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	onDisk := filepath.Join(dir, "products", filepath.Base(url))
	_, err = os.Stat(onDisk)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, url), "deleting twice is harmless")
	assert.NoError(t, s.Delete(ctx, "https://elsewhere.example/x.png"))
}

func TestLocalStore_ResizesWideImages(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "categories", dto.FileUpload{ContentType: "image/png", Data: pngOf(t, 3200, 800)})
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(dir, "categories", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, MaxWidth, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestLocalStore_RejectsNonImages(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Save(ctx, "products", dto.FileUpload{ContentType: "application/pdf", Data: []byte("%PDF-1.4")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.Save(ctx, "products", dto.FileUpload{ContentType: "image/png", Data: []byte("not really a png")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.Save(ctx, "products", dto.FileUpload{ContentType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCleanFolder(t *testing.T) {
	assert.Equal(t, "products", cleanFolder("products"))
	assert.Equal(t, "etc", cleanFolder("../../etc"))
	assert.Equal(t, "misc", cleanFolder(""))
	assert.Equal(t, "misc", cleanFolder(".."))
}
