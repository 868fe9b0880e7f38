// Package form turns recognized text fragments into logical form fields.
package form

import (
	"fmt"
	"strings"

	"formdiff/pkg/geometry"
)

// Fragment is one recognized text token. Coordinates are in original
// (uncropped) image space.
type Fragment struct {
	Text       string  `json:"text"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Bounds returns the fragment's bounding box.
func (f Fragment) Bounds() geometry.RectInt {
	return geometry.RectInt{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Right returns the x coordinate just past the fragment's right edge.
func (f Fragment) Right() int {
	return f.X + f.Width
}

// Field is a group of fragments judged to form one UI control.
type Field struct {
	Type      FieldType        `json:"type"`
	Value     string           `json:"value"`
	Bounds    geometry.RectInt `json:"bounds"`
	Fragments []Fragment       `json:"fragments"`
}

// NewField builds a field from fragments in the given order. Bounds is the
// union of the fragment boxes and Value their texts joined by single spaces.
func NewField(fragments []Fragment) Field {
	texts := make([]string, len(fragments))
	rects := make([]geometry.RectInt, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
		rects[i] = f.Bounds()
	}

	value := strings.Join(texts, " ")
	return Field{
		Type:      Classify(value),
		Value:     value,
		Bounds:    geometry.UnionAll(rects),
		Fragments: fragments,
	}
}

// Center returns the center of the field's bounding box.
func (f Field) Center() geometry.Point2D {
	return f.Bounds.Center()
}

// Position returns the top-left corner of the field.
func (f Field) Position() geometry.PointInt {
	return f.Bounds.TopLeft()
}

func (f Field) String() string {
	return fmt.Sprintf("Field(%s, '%s', pos=(%d,%d))", f.Type, f.Value, f.Bounds.X, f.Bounds.Y)
}
