package colorutil

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	draw.Draw(img, image.Rect(0, 0, 2, 2), image.NewUniform(color.RGBA{R: 100, A: 255}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(2, 0, 4, 2), image.NewUniform(color.RGBA{R: 200, B: 50, A: 255}), image.Point{}, draw.Src)

	mean, ok := MeanColor(img, img.Bounds())
	require.True(t, ok)
	assert.InDelta(t, 150, mean[0], 1e-9)
	assert.InDelta(t, 0, mean[1], 1e-9)
	assert.InDelta(t, 25, mean[2], 1e-9)
}

func TestMeanColorOutsideBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	_, ok := MeanColor(img, image.Rect(10, 10, 20, 20))
	assert.False(t, ok)

	_, ok = RowMean(img, 4)
	assert.False(t, ok)
}

func TestChannelDistance(t *testing.T) {
	assert.InDelta(t, 60, ChannelDistance(RGB{10, 20, 30}, RGB{30, 0, 50}), 1e-9)
	assert.Zero(t, ChannelDistance(RGB{1, 2, 3}, RGB{1, 2, 3}))
}
