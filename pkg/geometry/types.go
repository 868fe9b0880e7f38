// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"image"

	"gonum.org/v1/gonum/floats"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return floats.Distance([]float64{p.X, p.Y}, []float64{other.X, other.Y}, 2)
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FromRectangle converts an image.Rectangle.
func FromRectangle(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rectangle converts to an image.Rectangle.
func (r RectInt) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// TopLeft returns the top-left corner.
func (r RectInt) TopLeft() PointInt {
	return PointInt{X: r.X, Y: r.Y}
}

// Center returns the center point of the rectangle.
func (r RectInt) Center() Point2D {
	return Point2D{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// Area returns Width*Height, or 0 for degenerate rectangles.
func (r RectInt) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Translate returns the rectangle shifted by (dx, dy).
func (r RectInt) Translate(dx, dy int) RectInt {
	r.X += dx
	r.Y += dy
	return r
}

// Union returns the smallest rectangle containing both rectangles.
func (r RectInt) Union(other RectInt) RectInt {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return RectInt{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// UnionAll returns the union of all rectangles, or the zero RectInt when
// rects is empty.
func UnionAll(rects []RectInt) RectInt {
	if len(rects) == 0 {
		return RectInt{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		u = u.Union(r)
	}
	return u
}
