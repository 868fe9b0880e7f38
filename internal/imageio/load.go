// Package imageio loads screenshots from disk.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrUnreadable is wrapped by every Load failure.
var ErrUnreadable = errors.New("cannot read image")

// Extensions lists the file extensions treated as screenshots (lowercase).
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif", ".gif"}

// Screenshot is a decoded image together with where it came from.
type Screenshot struct {
	Path   string
	Name   string // Base file name, used to pair screenshots across versions
	Format string
	Image  image.Image
}

// Width returns the image width in pixels.
func (s *Screenshot) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Screenshot) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Load decodes the image at path.
func Load(path string) (*Screenshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s: empty image", ErrUnreadable, path)
	}

	return &Screenshot{
		Path:   path,
		Name:   filepath.Base(path),
		Format: format,
		Image:  img,
	}, nil
}

// IsImageFile reports whether name has one of the supported extensions.
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
