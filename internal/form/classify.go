package form

import (
	"strings"
	"unicode"
)

// FieldType is the semantic kind of a form control.
type FieldType string

const (
	FieldButton     FieldType = "button"
	FieldCheckbox   FieldType = "checkbox"
	FieldRadio      FieldType = "radio"
	FieldDropdown   FieldType = "dropdown"
	FieldInputEmail FieldType = "input_email"
	FieldInputPhone FieldType = "input_phone"
	FieldInputDate  FieldType = "input_date"
	FieldInputText  FieldType = "input_text"
)

const inputPrefix = "input_"

// IsInput reports whether t is one of the text-input types.
func (t FieldType) IsInput() bool {
	return strings.HasPrefix(string(t), inputPrefix)
}

// Subtype returns the part after "input_" for input types ("email",
// "phone", ...), or the full name otherwise.
func (t FieldType) Subtype() string {
	return strings.TrimPrefix(string(t), inputPrefix)
}

// Keyword sets checked in order by Classify. Japanese and English variants.
var (
	buttonKeywords   = []string{"保存", "更新", "クリア", "キャンセル", "save", "clear", "cancel", "submit", "登録"}
	checkboxKeywords = []string{"メルマガ", "newsletter", "規約", "terms", "更新情報", "updates"}
	radioKeywords    = []string{"男性", "女性", "male", "female", "性別"}
	dropdownKeywords = []string{"東京", "大阪", "愛知", "福岡", "北海道", "都", "府", "県"}
	emailKeywords    = []string{"@", "mail", "メール"}
)

// Classify assigns a field type from the field's text. The checks overlap
// (a date-like phone number, a "更新" button that is also an update checkbox),
// so their order decides the result: button, checkbox, radio, dropdown,
// email, phone, date, then plain text.
func Classify(text string) FieldType {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, buttonKeywords):
		return FieldButton
	case containsAny(lower, checkboxKeywords):
		return FieldCheckbox
	case containsAny(lower, radioKeywords):
		return FieldRadio
	case containsAny(lower, dropdownKeywords):
		return FieldDropdown
	case containsAny(lower, emailKeywords):
		return FieldInputEmail
	}

	digits := countDigits(text)
	switch {
	case digits > 0 && (strings.Contains(text, "-") || digits >= 8):
		return FieldInputPhone
	case digits > 0 && strings.Contains(text, "/"):
		return FieldInputDate
	default:
		return FieldInputText
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
