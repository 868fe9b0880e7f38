// Package focus describes evidence of the active (focused) control in a form
// screenshot and picks the most telling piece of it.
package focus

import (
	"encoding/json"
	"fmt"
	"image"
	"sort"

	"formdiff/pkg/geometry"
)

// Kind identifies which pixel cue produced a candidate.
type Kind int

const (
	// KindBoldText is a dense glyph cluster, as drawn by bold focus styling.
	KindBoldText Kind = iota + 1
	// KindRoundedBorder is a rounded-corner outline around an input.
	KindRoundedBorder
	// KindCursor is a thin vertical text-entry caret.
	KindCursor
)

func (k Kind) String() string {
	switch k {
	case KindCursor:
		return "text_cursor"
	case KindBoldText:
		return "bold_text"
	case KindRoundedBorder:
		return "rounded_border"
	default:
		return "unknown"
	}
}

// Priority ranks kinds for primary selection: cursor > rounded border > bold text.
func (k Kind) Priority() int {
	switch k {
	case KindCursor:
		return 3
	case KindRoundedBorder:
		return 2
	case KindBoldText:
		return 1
	default:
		return 0
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "text_cursor":
		*k = KindCursor
	case "bold_text":
		*k = KindBoldText
	case "rounded_border":
		*k = KindRoundedBorder
	default:
		return fmt.Errorf("unknown focus kind %q", string(b))
	}
	return nil
}

// Candidate is one piece of geometric evidence for an active control.
// Coordinates are in original (uncropped) image space.
type Candidate struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Kind     Kind    `json:"type"`
	Strength float64 `json:"strength"` // Aspect, ink density or roundness depending on Kind
}

// NewCandidate builds a candidate from a bounding rectangle.
func NewCandidate(r image.Rectangle, kind Kind, strength float64) Candidate {
	return Candidate{
		X:        r.Min.X,
		Y:        r.Min.Y,
		Width:    r.Dx(),
		Height:   r.Dy(),
		Kind:     kind,
		Strength: strength,
	}
}

// Bounds returns the candidate's rectangle.
func (c Candidate) Bounds() geometry.RectInt {
	return geometry.RectInt{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// Result holds every candidate found in one screenshot.
type Result struct {
	Candidates []Candidate `json:"focus_elements"`
	Primary    *Candidate  `json:"primary_focus"`

	CursorsFound        int `json:"cursors_found"`
	BoldAreasFound      int `json:"bold_areas_found"`
	RoundedBordersFound int `json:"rounded_borders_found"`
}

// Empty reports whether nothing was detected.
func (r Result) Empty() bool {
	return len(r.Candidates) == 0
}

// NewResult concatenates the per-detector outputs, orders them by priority
// and selects the primary candidate.
func NewResult(cursors, bold, rounded []Candidate) Result {
	all := make([]Candidate, 0, len(cursors)+len(bold)+len(rounded))
	all = append(all, cursors...)
	all = append(all, bold...)
	all = append(all, rounded...)

	res := Result{
		Candidates:          Prioritize(all),
		CursorsFound:        len(cursors),
		BoldAreasFound:      len(bold),
		RoundedBordersFound: len(rounded),
	}
	if len(res.Candidates) > 0 {
		primary := res.Candidates[0]
		res.Primary = &primary
	}
	return res
}

// Prioritize sorts candidates by kind priority, highest first. Candidates of
// equal priority keep their input order. The input slice is sorted in place
// and returned.
func Prioritize(candidates []Candidate) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Kind.Priority() > candidates[j].Kind.Priority()
	})
	return candidates
}

// Rebase shifts every candidate down by offsetY rows.
func Rebase(candidates []Candidate, offsetY int) []Candidate {
	for i := range candidates {
		candidates[i].Y += offsetY
	}
	return candidates
}

// String implements fmt.Stringer for log output.
func (c Candidate) String() string {
	return fmt.Sprintf("%s(%d,%d %dx%d %.2f)", c.Kind, c.X, c.Y, c.Width, c.Height, c.Strength)
}

// MarshalJSON is implemented so a nil Primary is written as null while the
// candidate list is always an array.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	if r.Candidates == nil {
		r.Candidates = []Candidate{}
	}
	return json.Marshal(alias(r))
}
