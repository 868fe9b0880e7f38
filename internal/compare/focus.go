package compare

import (
	"formdiff/internal/focus"
	"formdiff/pkg/geometry"
)

// Focus comparison messages.
const (
	MsgNoFocusEither = "No focus elements detected in either image"
	MsgFocusOneSided = "Focus element present in only one image"
	MsgFocusMoved    = "Focused element moved beyond tolerance"
)

// CompareFocus compares the primary focus candidates of two screenshots.
// Both absent is a match; exactly one absent is a mismatch. Otherwise the
// primaries match when both axis offsets are within tolerance pixels.
func CompareFocus(a, b focus.Result, tolerance int) (bool, FocusDetails) {
	f1, f2 := a.Primary, b.Primary

	if f1 == nil && f2 == nil {
		return true, FocusDetails{Message: MsgNoFocusEither}
	}
	if f1 == nil || f2 == nil {
		return false, FocusDetails{
			Message: MsgFocusOneSided,
			Focus1:  f1,
			Focus2:  f2,
		}
	}

	diff := geometry.PointInt{X: abs(f1.X - f2.X), Y: abs(f1.Y - f2.Y)}
	match := diff.X <= tolerance && diff.Y <= tolerance

	details := FocusDetails{
		Focus1:             f1,
		Focus2:             f2,
		PositionDifference: &diff,
		Tolerance:          tolerance,
	}
	if !match {
		details.Message = MsgFocusMoved
	}
	return match, details
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
