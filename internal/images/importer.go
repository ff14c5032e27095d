package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PhotoDir is the media subdirectory holding imported photos.
const PhotoDir = "photos"

const defaultQuality = 80

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Importer copies picked images into Dir as square JPEGs.
type Importer struct {
	Dir      string
	MaxBytes int64
	Quality  int
}

func NewImporter(dir string, maxBytes int64) *Importer {
	return &Importer{Dir: dir, MaxBytes: maxBytes, Quality: defaultQuality}
}

// Import stores the asset and returns its reference relative to Dir, e.g.
// "photos/<uuid>.jpg".
func (im *Importer) Import(a Asset) (string, error) {
	data, err := io.ReadAll(io.LimitReader(a.Body, im.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > im.MaxBytes {
		return "", fmt.Errorf("image larger than %d bytes", im.MaxBytes)
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		return "", fmt.Errorf("unsupported image type %s", mt.String())
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	quality := im.Quality
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, cropSquare(img), &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	dir := filepath.Join(im.Dir, PhotoDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	name := uuid.NewString() + ".jpg"
	tmp, err := os.CreateTemp(dir, ".import-*")
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}
	if _, err := tmp.Write(out.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store photo: %w", err)
	}
	return path.Join(PhotoDir, name), nil
}

// cropSquare returns the centered square of img.
func cropSquare(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	r := image.Rect(x0, y0, x0+side, y0+side)
	if s, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(r)
	}
	return img
}
