package compare

import (
	"formdiff/internal/focus"
	"formdiff/internal/form"
	"formdiff/pkg/geometry"
)

// Result is the verdict for one pair of screenshots.
type Result struct {
	ImageName       string   `json:"image_name"`
	TextMatch       bool     `json:"text_match"`
	TextSimilarity  float64  `json:"text_similarity"`
	TextDifferences []string `json:"text_differences"`

	FocusMatch   bool         `json:"focus_match"`
	FocusDetails FocusDetails `json:"focus_details"`

	// OverallMatch is TextMatch && FocusMatch; nothing else feeds into it.
	OverallMatch bool `json:"overall_match"`

	// Informational only
	FieldDifferences   []FieldDifference `json:"field_differences"`
	PerceptualDistance *int              `json:"perceptual_distance,omitempty"`
}

// FieldDifference is one semantic change between two sets of fields.
type FieldDifference struct {
	FieldType   form.FieldType    `json:"field_type"`
	Description string            `json:"description"`
	Value1      string            `json:"value1"`
	Value2      string            `json:"value2"`
	Position    geometry.PointInt `json:"position"`
}

// FocusDetails explains a focus comparison.
type FocusDetails struct {
	Message            string             `json:"message,omitempty"`
	Focus1             *focus.Candidate   `json:"focus1"`
	Focus2             *focus.Candidate   `json:"focus2"`
	PositionDifference *geometry.PointInt `json:"position_difference,omitempty"`
	Tolerance          int                `json:"tolerance,omitempty"`
}

func newResult(name string, text textComparison, focusMatch bool, details FocusDetails) Result {
	return Result{
		ImageName:        name,
		TextMatch:        text.match,
		TextSimilarity:   text.similarity,
		TextDifferences:  text.differences,
		FocusMatch:       focusMatch,
		FocusDetails:     details,
		OverallMatch:     text.match && focusMatch,
		FieldDifferences: []FieldDifference{},
	}
}
