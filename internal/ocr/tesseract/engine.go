// Package tesseract recognizes words in screenshots with Tesseract.
package tesseract

import (
	"fmt"
	"image"

	"formdiff/internal/cvutil"
	"formdiff/internal/ocr"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages covers the bilingual forms formdiff is used on.
var DefaultLanguages = []string{"eng", "jpn"}

// Engine provides OCR functionality using Tesseract. An Engine wraps a single
// Tesseract client and must not be shared between goroutines.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine for the given Tesseract languages.
func NewEngine(languages ...string) (*Engine, error) {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	client := gosseract.NewClient()

	if err := client.SetLanguage(languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Fully automatic page segmentation, same as Tesseract's CLI default
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Extract recognizes every word in img.
func (e *Engine) Extract(img image.Image) ([]ocr.Word, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty image")
	}

	buf, err := cvutil.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	if err := e.client.SetImageFromBytes(buf); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	words := make([]ocr.Word, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, ocr.Word{
			Text:       box.Word,
			Left:       box.Box.Min.X,
			Top:        box.Box.Min.Y,
			Width:      box.Box.Dx(),
			Height:     box.Box.Dy(),
			Confidence: box.Confidence,
		})
	}

	return words, nil
}
