// Package cvutil bridges Go images and OpenCV matrices.
package cvutil

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var errEmptyImage = errors.New("empty image")

// ImageToMat converts a Go image to a BGR OpenCV Mat. Pixel (0,0) of the Mat
// is the image's bounds minimum, whatever its absolute coordinates.
func ImageToMat(srcImg image.Image) (gocv.Mat, error) {
	bounds := srcImg.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), errEmptyImage
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	if rgba, ok := srcImg.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			row := rgba.Pix[rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < w; x++ {
				mat.SetUCharAt(y, x*3+0, row[x*4+2])
				mat.SetUCharAt(y, x*3+1, row[x*4+1])
				mat.SetUCharAt(y, x*3+2, row[x*4+0])
			}
		}
		return mat, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := srcImg.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Convert from 16-bit to 8-bit and BGR order for OpenCV
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}

// Grayscale converts a Go image straight to a single-channel Mat.
func Grayscale(srcImg image.Image) (gocv.Mat, error) {
	bgr, err := ImageToMat(srcImg)
	if err != nil {
		bgr.Close()
		return gocv.NewMat(), fmt.Errorf("failed to convert image: %w", err)
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

// EncodePNG converts a Go image into PNG bytes through OpenCV.
func EncodePNG(srcImg image.Image) ([]byte, error) {
	mat, err := ImageToMat(srcImg)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases native memory that Close releases.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
