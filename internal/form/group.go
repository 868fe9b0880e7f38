package form

import "sort"

// GroupParams controls how fragments are clustered into fields.
type GroupParams struct {
	LineTolerance int // Fragments whose tops differ by less than this share a line
	MaxGap        int // Max |next.X - prev.Right()| for fragments in one field
}

// DefaultGroupParams returns the proximity thresholds for desktop forms,
// where a label and its value sit on one visual row.
func DefaultGroupParams() GroupParams {
	return GroupParams{
		LineTolerance: 10,
		MaxGap:        150,
	}
}

// Group clusters fragments into fields with DefaultGroupParams.
func Group(fragments []Fragment) []Field {
	return DefaultGroupParams().Group(fragments)
}

// Group clusters fragments into fields. Fragments are visited top to bottom,
// left to right; each unvisited fragment seeds a field that repeatedly absorbs
// any unvisited fragment on the same line and horizontally close to one of the
// field's members, until a full scan absorbs nothing. Duplicate fragments are
// tracked by position in the sorted order, never by value.
func (p GroupParams) Group(fragments []Fragment) []Field {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	used := make([]bool, len(sorted))
	var fields []Field

	for seed := range sorted {
		if used[seed] {
			continue
		}
		used[seed] = true
		members := []int{seed}

		for absorbed := true; absorbed; {
			absorbed = false
			for cand := range sorted {
				if used[cand] {
					continue
				}
				if p.joinsAny(sorted, members, cand) {
					used[cand] = true
					members = append(members, cand)
					absorbed = true
				}
			}
		}

		group := make([]Fragment, len(members))
		for i, idx := range members {
			group[i] = sorted[idx]
		}
		fields = append(fields, NewField(group))
	}

	return fields
}

// joinsAny reports whether sorted[cand] sits on the same line as, and close
// to the right edge of, any member.
func (p GroupParams) joinsAny(sorted []Fragment, members []int, cand int) bool {
	b := sorted[cand]
	for _, m := range members {
		a := sorted[m]
		if abs(b.Y-a.Y) < p.LineTolerance && abs(b.X-a.Right()) < p.MaxGap {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
