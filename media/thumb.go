// Package media serves downscaled blog images.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/image/draw"
)

const (
	DefaultWidth  = 800
	jpegQuality   = 80
	maxSourceSize = 10 << 20 // 10MB
	blogDir       = "images/blog"
)

// Widths are the thumbnail widths that may be requested.
var Widths = []int{480, 800, 1200}

var (
	// ErrNotFound is returned for missing or disallowed image names.
	ErrNotFound = errors.New("media: image not found")
	// ErrBadWidth is returned for widths outside Widths.
	ErrBadWidth = errors.New("media: unsupported width")
)

// Thumb is an encoded JPEG thumbnail.
type Thumb struct {
	Name   string
	Width  int
	Height int
	Data   []byte
}

// AllowedWidth reports whether w is in Widths.
func AllowedWidth(w int) bool {
	for _, x := range Widths {
		if x == w {
			return true
		}
	}
	return false
}

// cleanName rejects anything that is not a plain file name.
func cleanName(name string) (string, error) {
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `\/`) {
		return "", ErrNotFound
	}
	return name, nil
}

// Render loads images/blog/<name> from fsys and returns it as a JPEG no
// wider than width. Narrower sources are re-encoded at their own size.
func Render(fsys fs.FS, name string, width int) (Thumb, error) {
	if !AllowedWidth(width) {
		return Thumb{}, ErrBadWidth
	}
	name, err := cleanName(name)
	if err != nil {
		return Thumb{}, err
	}
	f, err := fsys.Open(path.Join(blogDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Thumb{}, ErrNotFound
		}
		return Thumb{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(io.LimitReader(f, maxSourceSize))
	if err != nil {
		return Thumb{}, fmt.Errorf("decode %s: %w", name, err)
	}
	img = scale(img, width)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Thumb{}, fmt.Errorf("encode %s: %w", name, err)
	}
	b := img.Bounds()
	return Thumb{Name: name, Width: b.Dx(), Height: b.Dy(), Data: buf.Bytes()}, nil
}

func scale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return img
	}
	newH := h * maxWidth / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
