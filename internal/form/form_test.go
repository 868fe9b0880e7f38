package form

import (
	"testing"

	"formdiff/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(text string, x, y, w, h int) Fragment {
	return Fragment{Text: text, X: x, Y: y, Width: w, Height: h, Confidence: 90}
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]Fragment{}))
}

func TestGroupSameLine(t *testing.T) {
	fields := Group([]Fragment{
		frag("Name", 100, 100, 50, 14),
		frag("John", 200, 101, 40, 14),
		frag("Smith", 250, 102, 50, 14),
	})
	require.Len(t, fields, 1)
	assert.Equal(t, "Name John Smith", fields[0].Value)
	assert.Equal(t, geometry.RectInt{X: 100, Y: 100, Width: 200, Height: 16}, fields[0].Bounds)
	assert.Equal(t, FieldInputText, fields[0].Type)
}

func TestGroupSeparatesLinesAndGaps(t *testing.T) {
	fields := Group([]Fragment{
		frag("Email", 100, 100, 50, 14),
		frag("taro@example.jp", 200, 100, 120, 14),
		frag("Phone", 100, 140, 50, 14),        // next line
		frag("03-1111-2222", 200, 141, 90, 14), // joins Phone
		frag("far", 600, 100, 30, 14),          // 280px past the email value
	})
	require.Len(t, fields, 3)

	assert.Equal(t, "Email taro@example.jp", fields[0].Value)
	assert.Equal(t, FieldInputEmail, fields[0].Type)
	assert.Equal(t, "far", fields[1].Value)
	assert.Equal(t, "Phone 03-1111-2222", fields[2].Value)
	assert.Equal(t, FieldInputPhone, fields[2].Type)
}

func TestGroupAbsorbsThroughLaterMembers(t *testing.T) {
	// "c" is too far from "a" but close to "b"; "b" is visited after "c" in
	// (y, x) order because it sits one pixel lower.
	fields := Group([]Fragment{
		frag("a", 0, 100, 100, 10),
		frag("c", 350, 100, 20, 10),
		frag("b", 200, 101, 100, 10),
	})
	require.Len(t, fields, 1)
	assert.Equal(t, "a b c", fields[0].Value)
}

func TestGroupKeepsDuplicateTokens(t *testing.T) {
	fields := Group([]Fragment{
		frag("OK", 10, 10, 20, 10),
		frag("OK", 10, 10, 20, 10),
		frag("OK", 10, 300, 20, 10),
	})
	require.Len(t, fields, 2)
	assert.Equal(t, "OK OK", fields[0].Value)
	assert.Len(t, fields[0].Fragments, 2)
	assert.Equal(t, "OK", fields[1].Value)
}

func TestGroupIsIdempotent(t *testing.T) {
	input := []Fragment{
		frag("Gender", 100, 200, 60, 14),
		frag("Male", 220, 203, 40, 14),
		frag("Female", 300, 199, 60, 14),
		frag("Address", 100, 260, 70, 14),
		frag("Tokyo", 230, 262, 50, 14),
		frag("Save", 500, 400, 40, 14),
	}
	for _, f := range Group(input) {
		again := Group(f.Fragments)
		require.Len(t, again, 1, f.Value)
		assert.Equal(t, f.Bounds, again[0].Bounds)
		assert.Equal(t, f.Value, again[0].Value)
	}
}

func TestGroupDoesNotMutateInput(t *testing.T) {
	input := []Fragment{frag("b", 10, 50, 5, 5), frag("a", 10, 10, 5, 5)}
	Group(input)
	assert.Equal(t, "b", input[0].Text)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want FieldType
	}{
		{"保存", FieldButton},
		{"Submit", FieldButton},
		{"Cancel changes", FieldButton},
		{"更新情報を受け取る", FieldButton}, // 更新 is a button keyword and wins over 更新情報
		{"Newsletter", FieldCheckbox},
		{"I agree to the terms", FieldCheckbox},
		{"メルマガ", FieldCheckbox},
		{"Gender Male", FieldRadio},
		{"女性", FieldRadio},
		{"東京都", FieldDropdown},
		{"大阪府", FieldDropdown},
		{"taro@example.jp", FieldInputEmail},
		{"E-Mail", FieldInputEmail},
		{"メールアドレス", FieldInputEmail},
		{"03-1111-2222", FieldInputPhone},
		{"09012345678", FieldInputPhone},
		{"2024/01/15", FieldInputPhone}, // eight digits: phone wins over date
		{"1/15", FieldInputDate},
		{"2024/1/5", FieldInputDate},
		{"Yamada Taro", FieldInputText},
		{"", FieldInputText},
		{"Room 12", FieldInputText},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), tt.text)
	}
}

func TestFieldTypeSubtype(t *testing.T) {
	assert.True(t, FieldInputEmail.IsInput())
	assert.Equal(t, "email", FieldInputEmail.Subtype())
	assert.False(t, FieldButton.IsInput())
	assert.Equal(t, "button", FieldButton.Subtype())
}

func TestNewField(t *testing.T) {
	f := NewField([]Fragment{frag("Save", 10, 20, 40, 12)})
	assert.Equal(t, FieldButton, f.Type)
	assert.Equal(t, geometry.PointInt{X: 10, Y: 20}, f.Position())
	assert.Equal(t, geometry.Point2D{X: 30, Y: 26}, f.Center())
	assert.Equal(t, "Field(button, 'Save', pos=(10,20))", f.String())
}
