package compare

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"formdiff/internal/form"
)

// minTextRunes drops shorter normalized texts as OCR noise.
const minTextRunes = 2

// maxListed caps how many texts a detail line lists.
const maxListed = 10

// Normalize trims text, collapses internal whitespace runs and lowercases it
// when ignoreCase is set.
func Normalize(text string, ignoreCase bool) string {
	if ignoreCase {
		text = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(text), " ")
}

// TextSet returns the distinct normalized fragment texts, without noise.
func TextSet(fragments []form.Fragment, ignoreCase bool) map[string]struct{} {
	set := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		t := Normalize(f.Text, ignoreCase)
		if utf8.RuneCountInString(t) < minTextRunes {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|. Two empty sets are identical (1).
func Jaccard(a, b map[string]struct{}) float64 {
	union := len(a)
	common := 0
	for t := range b {
		if _, ok := a[t]; ok {
			common++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(common) / float64(union)
}

// Summary returns a short, tiered description of a text mismatch. The first
// line states the severity; the rest are hints for the reviewer.
func Summary(similarity float64) []string {
	pct := similarity * 100
	switch {
	case pct >= 95:
		return []string{
			"Form content has minor differences",
			"Click images to zoom and inspect details",
		}
	case pct >= 80:
		return []string{
			"Form content differs in several fields",
			"Click images to zoom and compare",
		}
	case pct >= 50:
		return []string{
			"Form content has significant differences",
			"Review images carefully - multiple changes detected",
		}
	default:
		return []string{
			"Major content differences detected",
			"Significant structural or data changes",
			"Manual review recommended",
		}
	}
}

// TextDiff lists the texts present on only one side, at most ten per side.
func TextDiff(a, b map[string]struct{}) []string {
	var lines []string
	if only := missingFrom(a, b); len(only) > 0 {
		lines = append(lines, "Only in Version 1: "+listTexts(only))
	}
	if only := missingFrom(b, a); len(only) > 0 {
		lines = append(lines, "Only in Version 2: "+listTexts(only))
	}
	return lines
}

// missingFrom returns the sorted members of a absent from b.
func missingFrom(a, b map[string]struct{}) []string {
	var out []string
	for t := range a {
		if _, ok := b[t]; !ok {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func listTexts(texts []string) string {
	shown := texts
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	quoted := make([]string, len(shown))
	for i, t := range shown {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	s := "[" + strings.Join(quoted, ", ") + "]"
	if extra := len(texts) - len(shown); extra > 0 {
		s += fmt.Sprintf(" ... and %d more", extra)
	}
	return s
}

type textComparison struct {
	match       bool
	similarity  float64
	differences []string
}

func (c *Comparator) compareText(a, b []form.Fragment) textComparison {
	setA := TextSet(a, c.opts.IgnoreCase)
	setB := TextSet(b, c.opts.IgnoreCase)

	similarity := Jaccard(setA, setB)
	res := textComparison{
		match:       similarity >= c.opts.SimilarityThreshold,
		similarity:  similarity,
		differences: []string{},
	}
	if res.match {
		return res
	}

	res.differences = append(res.differences, Summary(similarity)...)
	if c.opts.Verbose {
		res.differences = append(res.differences, TextDiff(setA, setB)...)
	}
	return res
}
