// Package colorutil provides shared color utilities for screenshot analysis.
package colorutil

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
)

// Colors used when drawing synthetic screenshots and report overlays.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Slate     = color.RGBA{R: 44, G: 62, B: 80, A: 255}
	Highlight = color.RGBA{R: 52, G: 152, B: 219, A: 255}
)

// RGB holds 8-bit-scale channel values as floats.
type RGB [3]float64

// MeanColor returns the average color of the pixels of img inside r, on the
// 0-255 scale. The rectangle is clipped to the image bounds; ok is false when
// nothing is left after clipping.
func MeanColor(img image.Image, r image.Rectangle) (mean RGB, ok bool) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return RGB{}, false
	}

	var sum RGB
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			sum[0] += float64(cr >> 8)
			sum[1] += float64(cg >> 8)
			sum[2] += float64(cb >> 8)
		}
	}

	n := float64(r.Dx() * r.Dy())
	floats.Scale(1/n, sum[:])
	return sum, true
}

// RowMean returns the mean color of row y of img.
func RowMean(img image.Image, y int) (RGB, bool) {
	b := img.Bounds()
	return MeanColor(img, image.Rect(b.Min.X, y, b.Max.X, y+1))
}

// ChannelDistance returns the sum of absolute per-channel differences.
func ChannelDistance(a, b RGB) float64 {
	return floats.Distance(a[:], b[:], 1)
}
