package compare

import (
	"fmt"
	"math"
	"strings"

	"formdiff/internal/form"
)

// FieldPair links a field of the first screenshot to one of the second, by
// index.
type FieldPair struct {
	A, B int
}

// FieldMatching partitions two field lists into matched pairs and the
// leftovers on each side.
type FieldMatching struct {
	Pairs      []FieldPair
	UnmatchedA []int
	UnmatchedB []int
}

// MatchFields pairs every field of a with the field of b whose center is
// nearest, provided it is closer than maxDistance. Each a-field chooses on its
// own, so two a-fields may claim the same b-field; on equal distances the
// earlier b-field wins. This is a greedy heuristic, not an optimal assignment.
func MatchFields(a, b []form.Field, maxDistance float64) FieldMatching {
	matchedA := make([]bool, len(a))
	matchedB := make([]bool, len(b))
	var m FieldMatching

	for i, fa := range a {
		best := -1
		bestDist := math.Inf(1)
		ca := fa.Center()
		for j, fb := range b {
			d := ca.Distance(fb.Center())
			if d < maxDistance && d < bestDist {
				best, bestDist = j, d
			}
		}
		if best >= 0 {
			m.Pairs = append(m.Pairs, FieldPair{A: i, B: best})
			matchedA[i] = true
			matchedB[best] = true
		}
	}

	for i, ok := range matchedA {
		if !ok {
			m.UnmatchedA = append(m.UnmatchedA, i)
		}
	}
	for j, ok := range matchedB {
		if !ok {
			m.UnmatchedB = append(m.UnmatchedB, j)
		}
	}
	return m
}

// CompareFields reports value changes between matched fields, then fields
// that only exist in a (removed) or only in b (added).
func (c *Comparator) CompareFields(a, b []form.Field) []FieldDifference {
	m := MatchFields(a, b, c.opts.FieldMatchDistance)
	diffs := []FieldDifference{}

	for _, p := range m.Pairs {
		f1, f2 := a[p.A], b[p.B]
		if Normalize(f1.Value, c.opts.IgnoreCase) == Normalize(f2.Value, c.opts.IgnoreCase) {
			continue
		}
		diffs = append(diffs, FieldDifference{
			FieldType:   f1.Type,
			Description: DescribeChange(f1, f2),
			Value1:      f1.Value,
			Value2:      f2.Value,
			Position:    f1.Position(),
		})
	}

	for _, i := range m.UnmatchedA {
		f := a[i]
		diffs = append(diffs, FieldDifference{
			FieldType:   f.Type,
			Description: fmt.Sprintf("Field removed in Version 2: %s", f.Type),
			Value1:      f.Value,
			Position:    f.Position(),
		})
	}
	for _, j := range m.UnmatchedB {
		f := b[j]
		diffs = append(diffs, FieldDifference{
			FieldType:   f.Type,
			Description: fmt.Sprintf("Field added in Version 2: %s", f.Type),
			Value2:      f.Value,
			Position:    f.Position(),
		})
	}

	return diffs
}

// DescribeChange renders a human-readable description of a value change,
// worded after the first field's type.
func DescribeChange(f1, f2 form.Field) string {
	switch {
	case f1.Type == form.FieldButton:
		return fmt.Sprintf("Button text changed: '%s' → '%s'", f1.Value, f2.Value)

	case f1.Type == form.FieldCheckbox:
		words1 := wordSet(f1.Value)
		words2 := wordSet(f2.Value)
		if added := missingFrom(words2, words1); len(added) > 0 {
			return fmt.Sprintf("Checkbox: '%s' checked in Version 2", strings.Join(added, ", "))
		}
		if removed := missingFrom(words1, words2); len(removed) > 0 {
			return fmt.Sprintf("Checkbox: '%s' unchecked in Version 2", strings.Join(removed, ", "))
		}
		return "Checkbox selection changed"

	case f1.Type == form.FieldRadio:
		return fmt.Sprintf("Radio button: '%s' → '%s'", f1.Value, f2.Value)

	case f1.Type == form.FieldDropdown:
		return fmt.Sprintf("Dropdown selection: '%s' → '%s'",
			strings.TrimSpace(f1.Value), strings.TrimSpace(f2.Value))

	case f1.Type.IsInput():
		return fmt.Sprintf("Input field (%s) changed: '%s' → '%s'", f1.Type.Subtype(), f1.Value, f2.Value)

	default:
		return fmt.Sprintf("Field changed: '%s' → '%s'", f1.Value, f2.Value)
	}
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
