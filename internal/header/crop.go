// Package header removes the branding header band from form screenshots
// before text and focus analysis.
package header

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"formdiff/pkg/colorutil"
)

// Params holds parameters for header detection. See params.go for defaults.
type Params struct {
	SampleHeight   int     // Height of the strip sampled for the header color
	ScanLimit      float64 // Fraction of image height scanned for the boundary
	ColorTolerance float64 // Row differs from header when channel distance exceeds this
	SafetyMargin   int     // Pixels added below the detected boundary

	// A detected offset is accepted only when MinOffset < offset < MaxOffsetRatio*height.
	MinOffset      int
	MaxOffsetRatio float64

	FallbackPercentage float64 // Fraction of height cropped when detection fails
}

// Method indicates how the crop offset was obtained.
type Method int

const (
	// MethodDetected means the color-uniformity scan found the boundary.
	MethodDetected Method = iota
	// MethodFallback means the fixed percentage crop was used.
	MethodFallback
)

func (m Method) String() string {
	switch m {
	case MethodDetected:
		return "detected"
	case MethodFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result describes one crop.
type Result struct {
	Image  image.Image // Cropped image, bounds start at (0,0)
	Offset int         // Rows removed from the top of the original
	Method Method
	Reason error // Why detection was rejected, nil when MethodDetected
}

var (
	errNoBoundary  = errors.New("no header boundary found")
	errEmptyImage  = errors.New("empty image")
	errOutOfBounds = errors.New("boundary outside accepted range")
)

// Cropper removes a header band from screenshots.
type Cropper struct {
	params Params
}

// NewCropper creates a cropper with the given parameters.
func NewCropper(params Params) *Cropper {
	return &Cropper{params: params}
}

// Crop returns the image with its header removed and the number of rows cut.
func (c *Cropper) Crop(img image.Image) (image.Image, int) {
	r := c.Apply(img)
	return r.Image, r.Offset
}

// Apply crops img and reports how the offset was chosen. Detection failures
// never surface as errors; the percentage fallback is used instead.
func (c *Cropper) Apply(img image.Image) Result {
	height := img.Bounds().Dy()

	boundary, err := c.DetectBoundary(img)
	if err == nil && !(boundary > c.params.MinOffset && float64(boundary) < float64(height)*c.params.MaxOffsetRatio) {
		err = fmt.Errorf("%w: %d", errOutOfBounds, boundary)
	}

	if err != nil {
		offset := c.FallbackOffset(height)
		return Result{
			Image:  cropTop(img, offset),
			Offset: offset,
			Method: MethodFallback,
			Reason: err,
		}
	}

	return Result{
		Image:  cropTop(img, boundary),
		Offset: boundary,
		Method: MethodDetected,
	}
}

// FallbackOffset returns the percentage-based offset for an image of the
// given height.
func (c *Cropper) FallbackOffset(height int) int {
	offset := int(float64(height) * c.params.FallbackPercentage)
	return clampOffset(offset, height)
}

// DetectBoundary finds the first row below the sampled header strip whose mean
// color differs from the header's mean color, plus the safety margin. The
// returned offset is relative to the top of the image.
func (c *Cropper) DetectBoundary(img image.Image) (offset int, err error) {
	defer func() {
		if r := recover(); r != nil {
			offset, err = 0, fmt.Errorf("header detection failed: %v", r)
		}
	}()

	b := img.Bounds()
	height := b.Dy()
	if height == 0 || b.Dx() == 0 {
		return 0, errEmptyImage
	}

	sample := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+min(c.params.SampleHeight, height))
	headerColor, ok := colorutil.MeanColor(img, sample)
	if !ok {
		return 0, errEmptyImage
	}

	limit := min(int(float64(height)*c.params.ScanLimit), height)
	for y := c.params.SampleHeight; y < limit; y++ {
		rowColor, ok := colorutil.RowMean(img, b.Min.Y+y)
		if !ok {
			continue
		}
		if colorutil.ChannelDistance(rowColor, headerColor) > c.params.ColorTolerance {
			return min(y+c.params.SafetyMargin, height), nil
		}
	}

	return 0, errNoBoundary
}

func clampOffset(offset, height int) int {
	if offset < 0 || height <= 0 {
		return 0
	}
	if offset >= height {
		return height - 1
	}
	return offset
}

// cropTop copies img below offset into a new RGBA image anchored at (0,0).
func cropTop(img image.Image, offset int) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()-offset))
	draw.Draw(dst, dst.Bounds(), img, image.Point{X: b.Min.X, Y: b.Min.Y + offset}, draw.Src)
	return dst
}
