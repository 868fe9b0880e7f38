package focus

// Params holds thresholds for the three focus cues.
type Params struct {
	// Canny thresholds shared by the cursor and rounded-border detectors
	CannyLow, CannyHigh float32

	// Text cursor: thin vertical line
	CursorMaxWidth  int
	CursorMinAspect float64 // Height must exceed width times this
	CursorMinHeight int     // Exclusive
	CursorMaxHeight int     // Exclusive

	// Bold text: dense ink after Otsu binarization and one 3x3 dilation
	BoldKernelSize int
	BoldMinArea    float64 // Exclusive
	BoldMaxArea    float64 // Exclusive
	BoldMinDensity float64 // Exclusive

	// Rounded border: polygon approximation plus perimeter ratio
	BorderEpsilon      float64 // Fraction of the contour perimeter
	BorderMinVertices  int
	BorderMinArea      float64 // Exclusive
	BorderMaxArea      float64 // Exclusive
	BorderMinRoundness float64 // Exclusive
	BorderMaxRoundness float64 // Exclusive
}

// DefaultParams returns thresholds tuned for desktop form screenshots.
func DefaultParams() Params {
	return Params{
		CannyLow:  50,
		CannyHigh: 150,

		CursorMaxWidth:  3,
		CursorMinAspect: 3,
		CursorMinHeight: 10,
		CursorMaxHeight: 50,

		BoldKernelSize: 3,
		BoldMinArea:    100,
		BoldMaxArea:    50000,
		BoldMinDensity: 0.15,

		BorderEpsilon:      0.02,
		BorderMinVertices:  4,
		BorderMinArea:      1000,
		BorderMaxArea:      100000,
		BorderMinRoundness: 1.05, // Plain rectangles sit at ~1.0
		BorderMaxRoundness: 1.3,  // Circles and noisy outlines run higher
	}
}

// IsCursor reports whether a w×h bounding box looks like a text caret.
func (p Params) IsCursor(w, h int) bool {
	return w <= p.CursorMaxWidth &&
		float64(h) > float64(w)*p.CursorMinAspect &&
		h > p.CursorMinHeight && h < p.CursorMaxHeight
}

// AcceptBoldArea reports whether a contour area is in the bold-text range.
func (p Params) AcceptBoldArea(area float64) bool {
	return area > p.BoldMinArea && area < p.BoldMaxArea
}

// AcceptDensity reports whether an ink density indicates bold glyphs.
func (p Params) AcceptDensity(density float64) bool {
	return density > p.BoldMinDensity
}

// AcceptBorderShape reports whether an approximated polygon and its contour
// area qualify as a rounded-border candidate.
func (p Params) AcceptBorderShape(vertices int, area float64) bool {
	return vertices >= p.BorderMinVertices && area > p.BorderMinArea && area < p.BorderMaxArea
}

// AcceptRoundness reports whether a perimeter ratio is in the rounded band.
func (p Params) AcceptRoundness(roundness float64) bool {
	return roundness > p.BorderMinRoundness && roundness < p.BorderMaxRoundness
}

// Roundness is the contour perimeter divided by the perimeter of its w×h
// bounding rectangle, or 0 for a degenerate rectangle.
func Roundness(contourPerimeter float64, w, h int) float64 {
	rectPerimeter := float64(2 * (w + h))
	if rectPerimeter <= 0 {
		return 0
	}
	return contourPerimeter / rectPerimeter
}

// InkDensity is the fraction of foreground pixels in a w×h box, or 0 for an
// empty box.
func InkDensity(foreground, w, h int) float64 {
	if w*h <= 0 {
		return 0
	}
	return float64(foreground) / float64(w*h)
}
