package storage

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
)

// MaxWidth widest stored image; larger uploads are scaled down keeping the aspect ratio.
const MaxWidth = 1600

var formats = map[string]struct {
	format imaging.Format
	ext    string
}{
	"image/jpeg": {imaging.JPEG, ".jpg"},
	"image/png":  {imaging.PNG, ".png"},
	"image/gif":  {imaging.GIF, ".gif"},
	"image/bmp":  {imaging.BMP, ".bmp"},
	"image/tiff": {imaging.TIFF, ".tiff"},
}

// normalized an image ready to be written.
type normalized struct {
	Name        string
	ContentType string
	Data        []byte
}

// normalize sniffs the upload, rejects anything that is not a decodable image and
// re-encodes it no wider than MaxWidth under a random name.
func normalize(file dto.FileUpload) (*normalized, error) {
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}
	declared := strings.ToLower(strings.TrimSpace(file.ContentType))
	if declared != "" && declared != "application/octet-stream" && !strings.HasPrefix(declared, "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed", domain.ErrInvalidInput)
	}

	sniffed := http.DetectContentType(file.Data)
	f, ok := formats[sniffed]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %s", domain.ErrInvalidInput, sniffed)
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image", domain.ErrInvalidInput)
	}
	if img.Bounds().Dx() > MaxWidth {
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f.format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &normalized{
		Name:        uuid.New().String() + f.ext,
		ContentType: sniffed,
		Data:        buf.Bytes(),
	}, nil
}

// cleanFolder keeps folder names to a single safe path segment.
func cleanFolder(folder string) string {
	folder = path.Base(path.Clean("/" + strings.TrimSpace(folder)))
	if folder == "/" || folder == "." || folder == ".." {
		return "misc"
	}
	return folder
}
