package findings

import "sort"

// LineRange is a contiguous span of lines, 1-based and inclusive on both ends.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the given line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Coalesce merges a list of line numbers into the minimal list of contiguous
// ranges: consecutive lines join one range, any gap starts a new one.
// Duplicates and ordering of the input do not affect the result, so every
// consumer derives identical ranges from the same line set.
func Coalesce(lines []int) []LineRange {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]int, len(lines))
	copy(sorted, lines)
	sort.Ints(sorted)

	var ranges []LineRange
	current := LineRange{Start: sorted[0], End: sorted[0]}
	for _, line := range sorted[1:] {
		switch {
		case line == current.End:
			// duplicate line
		case line == current.End+1:
			current.End = line
		default:
			ranges = append(ranges, current)
			current = LineRange{Start: line, End: line}
		}
	}
	return append(ranges, current)
}
