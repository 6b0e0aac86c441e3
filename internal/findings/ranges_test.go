package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name  string
		lines []int
		want  []LineRange
	}{
		{
			name:  "mixed gaps",
			lines: []int{1, 2, 3, 7, 8, 10},
			want:  []LineRange{{1, 3}, {7, 8}, {10, 10}},
		},
		{
			name:  "empty input",
			lines: []int{},
			want:  nil,
		},
		{
			name:  "single line",
			lines: []int{5},
			want:  []LineRange{{5, 5}},
		},
		{
			name:  "unsorted input",
			lines: []int{10, 7, 3, 8, 1, 2},
			want:  []LineRange{{1, 3}, {7, 8}, {10, 10}},
		},
		{
			name:  "duplicates merge",
			lines: []int{4, 4, 5, 5, 9},
			want:  []LineRange{{4, 5}, {9, 9}},
		},
		{
			name:  "all contiguous",
			lines: []int{2, 3, 4, 5},
			want:  []LineRange{{2, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coalesce(tt.lines))
		})
	}
}

func TestCoalesceNoAdjacentRanges(t *testing.T) {
	// No two produced ranges may be mergeable further.
	ranges := Coalesce([]int{1, 3, 5, 6, 9, 10, 11, 20})
	for i := 1; i < len(ranges); i++ {
		assert.Greater(t, ranges[i].Start, ranges[i-1].End+1,
			"ranges %v and %v should not be adjacent", ranges[i-1], ranges[i])
	}
}

func TestLineRangeContains(t *testing.T) {
	r := LineRange{Start: 3, End: 5}
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(4))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(2))
	assert.False(t, r.Contains(6))
}
