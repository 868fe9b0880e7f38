// Package ocr turns raw word recognitions into form fragments.
package ocr

import "strings"

// Word is one raw recognition result, in the coordinates of the image that
// was recognized.
type Word struct {
	Text       string
	Left       int
	Top        int
	Width      int
	Height     int
	Confidence float64 // 0-100 as reported by Tesseract
}

// Text returns the words joined by spaces, for quick inspection.
func Text(words []Word) string {
	texts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(w.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}
