package compare

import (
	"testing"

	"formdiff/internal/form"
	"formdiff/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(t form.FieldType, value string, x, y int) form.Field {
	return form.Field{
		Type:   t,
		Value:  value,
		Bounds: geometry.RectInt{X: x, Y: y, Width: 40, Height: 20},
	}
}

func TestMatchFieldsNearest(t *testing.T) {
	a := []form.Field{field(form.FieldInputText, "John", 80, 90)}
	b := []form.Field{
		field(form.FieldInputText, "far", 160, 90),
		field(form.FieldInputText, "Jane", 85, 93),
	}

	m := MatchFields(a, b, 100)
	assert.Equal(t, []FieldPair{{A: 0, B: 1}}, m.Pairs)
	assert.Empty(t, m.UnmatchedA)
	assert.Equal(t, []int{0}, m.UnmatchedB)
}

func TestMatchFieldsDistanceIsStrict(t *testing.T) {
	a := []form.Field{field(form.FieldButton, "Save", 0, 0)}
	b := []form.Field{field(form.FieldButton, "Save", 100, 0)}

	m := MatchFields(a, b, 100)
	assert.Empty(t, m.Pairs)
	assert.Equal(t, []int{0}, m.UnmatchedA)
	assert.Equal(t, []int{0}, m.UnmatchedB)
}

func TestMatchFieldsTieGoesToFirst(t *testing.T) {
	a := []form.Field{field(form.FieldInputText, "x", 100, 100)}
	b := []form.Field{
		field(form.FieldInputText, "left", 90, 100),
		field(form.FieldInputText, "right", 110, 100),
	}

	m := MatchFields(a, b, 100)
	assert.Equal(t, []FieldPair{{A: 0, B: 0}}, m.Pairs)
}

func TestMatchFieldsIsGreedy(t *testing.T) {
	a := []form.Field{
		field(form.FieldInputText, "one", 100, 100),
		field(form.FieldInputText, "two", 120, 100),
	}
	b := []form.Field{field(form.FieldInputText, "only", 110, 100)}

	m := MatchFields(a, b, 100)
	assert.Equal(t, []FieldPair{{A: 0, B: 0}, {A: 1, B: 0}}, m.Pairs)
	assert.Empty(t, m.UnmatchedA)
	assert.Empty(t, m.UnmatchedB)
}

func TestCompareFields(t *testing.T) {
	c := NewComparator(DefaultOptions(), nil, &fakeExtractor{}, &fakeDetector{})

	a := []form.Field{
		field(form.FieldButton, "Save", 10, 10),
		field(form.FieldInputText, "John", 300, 10),
		field(form.FieldRadio, "Male", 10, 300),
	}
	b := []form.Field{
		field(form.FieldButton, "SAVE", 12, 10),
		field(form.FieldInputText, "Jane", 305, 12),
		field(form.FieldDropdown, "Tokyo", 600, 600),
	}

	diffs := c.CompareFields(a, b)
	require.Len(t, diffs, 3)

	assert.Equal(t, "Input field (text) changed: 'John' → 'Jane'", diffs[0].Description)
	assert.Equal(t, geometry.PointInt{X: 300, Y: 10}, diffs[0].Position)
	assert.Equal(t, "John", diffs[0].Value1)
	assert.Equal(t, "Jane", diffs[0].Value2)

	assert.Equal(t, "Field removed in Version 2: radio", diffs[1].Description)
	assert.Equal(t, "Male", diffs[1].Value1)
	assert.Empty(t, diffs[1].Value2)

	assert.Equal(t, "Field added in Version 2: dropdown", diffs[2].Description)
	assert.Equal(t, geometry.PointInt{X: 600, Y: 600}, diffs[2].Position)
}

func TestCompareFieldsEmpty(t *testing.T) {
	c := NewComparator(DefaultOptions(), nil, &fakeExtractor{}, &fakeDetector{})
	diffs := c.CompareFields(nil, nil)
	assert.NotNil(t, diffs)
	assert.Empty(t, diffs)
}

func TestDescribeChange(t *testing.T) {
	tests := []struct {
		name string
		f1   form.Field
		f2   form.Field
		want string
	}{
		{
			"button",
			field(form.FieldButton, "Save", 0, 0), field(form.FieldButton, "Update", 0, 0),
			"Button text changed: 'Save' → 'Update'",
		},
		{
			"checkbox checked",
			field(form.FieldCheckbox, "Subscribe newsletter", 0, 0), field(form.FieldCheckbox, "Subscribe newsletter weekly", 0, 0),
			"Checkbox: 'weekly' checked in Version 2",
		},
		{
			"checkbox unchecked",
			field(form.FieldCheckbox, "terms agreed yes", 0, 0), field(form.FieldCheckbox, "terms agreed", 0, 0),
			"Checkbox: 'yes' unchecked in Version 2",
		},
		{
			"checkbox same words",
			field(form.FieldCheckbox, "Newsletter", 0, 0), field(form.FieldCheckbox, "newsletter", 0, 0),
			"Checkbox selection changed",
		},
		{
			"radio",
			field(form.FieldRadio, "Male", 0, 0), field(form.FieldRadio, "Female", 0, 0),
			"Radio button: 'Male' → 'Female'",
		},
		{
			"dropdown trims",
			field(form.FieldDropdown, " Tokyo ", 0, 0), field(form.FieldDropdown, "Osaka", 0, 0),
			"Dropdown selection: 'Tokyo' → 'Osaka'",
		},
		{
			"email input",
			field(form.FieldInputEmail, "a@x.jp", 0, 0), field(form.FieldInputEmail, "b@x.jp", 0, 0),
			"Input field (email) changed: 'a@x.jp' → 'b@x.jp'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeChange(tt.f1, tt.f2))
		})
	}
}
