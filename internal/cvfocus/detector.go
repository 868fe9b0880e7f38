// Package cvfocus finds focus candidates in screenshots with OpenCV.
package cvfocus

import (
	"image"

	"formdiff/internal/cvutil"
	"formdiff/internal/focus"
	"formdiff/internal/header"
	"formdiff/internal/imageio"

	"gocv.io/x/gocv"
)

// Detector runs the cursor, bold-text and rounded-border detectors.
type Detector struct {
	params  focus.Params
	cropper *header.Cropper
}

// NewDetector creates a detector. The cropper is only used by DetectFile.
func NewDetector(params focus.Params, cropper *header.Cropper) *Detector {
	return &Detector{params: params, cropper: cropper}
}

// DetectFile loads a screenshot, removes its header and detects focus
// candidates. A screenshot that cannot be loaded yields an empty result.
func (d *Detector) DetectFile(path string) focus.Result {
	shot, err := imageio.Load(path)
	if err != nil {
		return focus.NewResult(nil, nil, nil)
	}
	cropped, offset := d.cropper.Crop(shot.Image)
	return d.Detect(cropped, offset)
}

// Detect finds focus candidates in an already-cropped image and rebases them
// by offsetY into original image space.
func (d *Detector) Detect(img image.Image, offsetY int) focus.Result {
	gray, err := cvutil.Grayscale(img)
	if err != nil {
		return focus.NewResult(nil, nil, nil)
	}
	defer gray.Close()

	cursors := focus.Rebase(d.detectCursors(gray), offsetY)
	bold := focus.Rebase(d.detectBoldText(gray), offsetY)
	rounded := focus.Rebase(d.detectRoundedBorders(gray), offsetY)

	return focus.NewResult(cursors, bold, rounded)
}

// edges runs Canny edge detection on a grayscale Mat.
func (d *Detector) edges(gray gocv.Mat) gocv.Mat {
	edges := gocv.NewMat()
	gocv.Canny(gray, &edges, d.params.CannyLow, d.params.CannyHigh)
	return edges
}

// detectCursors looks for thin vertical edge contours shaped like a blinking
// text-entry caret.
func (d *Detector) detectCursors(gray gocv.Mat) []focus.Candidate {
	edges := d.edges(gray)
	defer edges.Close()

	contours := gocv.FindContours(edges, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	var cursors []focus.Candidate
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		w, h := rect.Dx(), rect.Dy()
		if !d.params.IsCursor(w, h) {
			continue
		}
		aspect := float64(h)
		if w > 0 {
			aspect = float64(h) / float64(w)
		}
		cursors = append(cursors, focus.NewCandidate(rect, focus.KindCursor, aspect))
	}
	return cursors
}

// detectBoldText finds glyph clusters whose ink density suggests a bold
// font weight, a common focus-highlight style.
func (d *Detector) detectBoldText(gray gocv.Mat) []focus.Candidate {
	// Dark text on a light background becomes foreground
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	ksize := d.params.BoldKernelSize
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{ksize, ksize})
	defer kernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(binary, &dilated, kernel)

	contours := gocv.FindContours(dilated, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var bold []focus.Candidate
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		if !d.params.AcceptBoldArea(gocv.ContourArea(contour)) {
			continue
		}

		rect := gocv.BoundingRect(contour).Intersect(image.Rect(0, 0, binary.Cols(), binary.Rows()))
		if rect.Empty() {
			continue
		}

		// Density is measured on the undilated binary image
		roi := binary.Region(rect)
		foreground := gocv.CountNonZero(roi)
		roi.Close()

		density := focus.InkDensity(foreground, rect.Dx(), rect.Dy())
		if d.params.AcceptDensity(density) {
			bold = append(bold, focus.NewCandidate(rect, focus.KindBoldText, density))
		}
	}
	return bold
}

// detectRoundedBorders finds outlines that are nearly rectangular but whose
// perimeter is slightly longer than their bounding box's, the signature of
// rounded corners on a focused input.
func (d *Detector) detectRoundedBorders(gray gocv.Mat) []focus.Candidate {
	edges := d.edges(gray)
	defer edges.Close()

	contours := gocv.FindContours(edges, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	var rounded []focus.Candidate
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		perimeter := gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, d.params.BorderEpsilon*perimeter, true)
		vertices := approx.Size()
		approx.Close()

		area := gocv.ContourArea(contour)
		if !d.params.AcceptBorderShape(vertices, area) {
			continue
		}

		rect := gocv.BoundingRect(contour)
		roundness := focus.Roundness(perimeter, rect.Dx(), rect.Dy())
		if d.params.AcceptRoundness(roundness) {
			rounded = append(rounded, focus.NewCandidate(rect, focus.KindRoundedBorder, roundness))
		}
	}
	return rounded
}
