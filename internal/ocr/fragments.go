package ocr

import (
	"strings"

	"formdiff/internal/form"
)

// MinConfidence is the Tesseract confidence a word must exceed to be kept.
const MinConfidence = 30

// Fragments filters words to confident, non-blank ones and converts them to
// form fragments in original image space by adding offsetY.
func Fragments(words []Word, offsetY int) []form.Fragment {
	var frags []form.Fragment
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Confidence <= MinConfidence {
			continue
		}
		frags = append(frags, form.Fragment{
			Text:       text,
			X:          w.Left,
			Y:          w.Top + offsetY,
			Width:      w.Width,
			Height:     w.Height,
			Confidence: w.Confidence,
		})
	}
	return frags
}
