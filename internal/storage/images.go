// Package storage persists uploaded product and category images.
package storage

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const maxWidth = 800

// ImageStore saves an uploaded image and returns its public URL.
type ImageStore interface {
	Save(r io.Reader) (string, error)
}

type DiskImageStore struct {
	dir       string
	publicURL string
}

func NewDiskImageStore(dir string, publicURL string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImageStore{dir: dir, publicURL: publicURL}, nil
}

// Save decodes, scales down to maxWidth and re-encodes as JPEG under a
// fresh uuid filename.
func (s *DiskImageStore) Save(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	scaled := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	filename := uuid.New().String() + ".jpg"
	path := filepath.Join(s.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: 80}); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode image: %w", err)
	}

	return s.publicURL + "/" + filename, nil
}
