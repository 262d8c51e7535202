package normalize

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"gifforge/internal/services"
)

// Image is one normalized frame candidate: a PNG raster whose dimensions are
// bounded on both axes.
type Image struct {
	PNG        []byte
	Width      int
	Height     int
	SourceName string
}

// Normalizer decodes arbitrary source images and produces canonical PNG
// rasters. It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	maxDimension int
}

// New constructs a Normalizer bounding frames to maxDimension on both axes.
func New(maxDimension int) *Normalizer {
	if maxDimension < 1 {
		maxDimension = 1
	}
	return &Normalizer{maxDimension: maxDimension}
}

// imageExtensions mirrors the accepted upload types; selection is by declared
// type, not content sniffing, so unknown extensions are skipped silently.
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
}

// IsImagePath reports whether the file name declares a supported image type.
func IsImagePath(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Normalize decodes one source image and re-encodes it as a PNG raster no
// larger than the configured bound, preserving aspect ratio. Within-bounds
// images are re-encoded at their original size; the step normalizes format,
// not size.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader, sourceName string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, services.Wrap(services.ErrRead, "normalizer", "read", sourceName, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, services.Wrap(services.ErrRead, "normalizer", "read", sourceName, err)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, services.Wrap(services.ErrDecode, "normalizer", "decode", sourceName, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	targetW, targetH := n.boundDimensions(width, height)

	if targetW != width || targetH != height {
		scaled := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return Image{}, services.Wrap(services.ErrReencode, "normalizer", "encode png", sourceName, err)
	}

	return Image{
		PNG:        buf.Bytes(),
		Width:      targetW,
		Height:     targetH,
		SourceName: sourceName,
	}, nil
}

// boundDimensions scales (width, height) so the larger axis equals the bound
// when either exceeds it, rounding the other axis to the nearest integer.
func (n *Normalizer) boundDimensions(width, height int) (int, int) {
	if width <= n.maxDimension && height <= n.maxDimension {
		return width, height
	}
	if width >= height {
		scaled := int(math.Round(float64(height) * float64(n.maxDimension) / float64(width)))
		return n.maxDimension, maxInt(scaled, 1)
	}
	scaled := int(math.Round(float64(width) * float64(n.maxDimension) / float64(height)))
	return maxInt(scaled, 1), n.maxDimension
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MaxDimension returns the configured bound.
func (n *Normalizer) MaxDimension() int {
	return n.maxDimension
}
