package ocr

import (
	"testing"

	"formdiff/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentsFilterAndRebase(t *testing.T) {
	words := []Word{
		{Text: " Save ", Left: 10, Top: 5, Width: 40, Height: 12, Confidence: 95},
		{Text: "noise", Left: 0, Top: 0, Width: 4, Height: 4, Confidence: 30}, // not above threshold
		{Text: "   ", Left: 0, Top: 0, Width: 4, Height: 4, Confidence: 99},
		{Text: "", Left: 0, Top: 0, Width: 0, Height: 0, Confidence: -1},
		{Text: "Name", Left: 60, Top: 40, Width: 30, Height: 12, Confidence: 30.5},
	}

	frags := Fragments(words, 72)
	require.Len(t, frags, 2)
	assert.Equal(t, form.Fragment{Text: "Save", X: 10, Y: 77, Width: 40, Height: 12, Confidence: 95}, frags[0])
	assert.Equal(t, "Name", frags[1].Text)
	assert.Equal(t, 112, frags[1].Y)
}

func TestFragmentsEmpty(t *testing.T) {
	assert.Empty(t, Fragments(nil, 10))
}

func TestText(t *testing.T) {
	assert.Equal(t, "a b", Text([]Word{{Text: "a"}, {Text: " "}, {Text: "b "}}))
}
