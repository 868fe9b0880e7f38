package geometry

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectUnion(t *testing.T) {
	a := RectInt{X: 10, Y: 20, Width: 30, Height: 10}
	b := RectInt{X: 50, Y: 15, Width: 10, Height: 10}

	u := a.Union(b)
	assert.Equal(t, RectInt{X: 10, Y: 15, Width: 50, Height: 15}, u)
	assert.Equal(t, u, b.Union(a))
}

func TestUnionAll(t *testing.T) {
	assert.Equal(t, RectInt{}, UnionAll(nil))

	rects := []RectInt{
		{X: 0, Y: 0, Width: 5, Height: 5},
		{X: 10, Y: 10, Width: 5, Height: 5},
		{X: -5, Y: 3, Width: 2, Height: 2},
	}
	assert.Equal(t, RectInt{X: -5, Y: 0, Width: 20, Height: 15}, UnionAll(rects))
}

func TestRectCenterAndDistance(t *testing.T) {
	r := RectInt{X: 90, Y: 90, Width: 20, Height: 20}
	assert.Equal(t, Point2D{X: 100, Y: 100}, r.Center())

	d := Point2D{X: 100, Y: 100}.Distance(Point2D{X: 105, Y: 103})
	assert.InDelta(t, math.Sqrt(34), d, 1e-9)
}

func TestRectangleConversion(t *testing.T) {
	rect := image.Rect(3, 4, 13, 24)
	r := FromRectangle(rect)
	assert.Equal(t, RectInt{X: 3, Y: 4, Width: 10, Height: 20}, r)
	assert.Equal(t, rect, r.Rectangle())
	assert.Equal(t, 200, r.Area())
	assert.Equal(t, 0, RectInt{Width: -1, Height: 4}.Area())
	assert.Equal(t, RectInt{X: 3, Y: 104, Width: 10, Height: 20}, r.Translate(0, 100))
}
