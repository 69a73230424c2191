package reorder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	cases := []struct {
		name         string
		in           []string
		from, offset int
		want         []string
	}{
		{"forward to end", []string{"a", "b", "c"}, 0, 3, []string{"b", "c", "a"}},
		{"forward one", []string{"a", "b", "c"}, 0, 2, []string{"b", "a", "c"}},
		{"backward to front", []string{"a", "b", "c"}, 2, 0, []string{"c", "a", "b"}},
		{"same slot", []string{"a", "b", "c"}, 1, 1, []string{"a", "b", "c"}},
		{"next slot", []string{"a", "b", "c"}, 1, 2, []string{"a", "b", "c"}},
		{"from out of range", []string{"a", "b"}, 5, 0, []string{"a", "b"}},
		{"offset out of range", []string{"a", "b"}, 0, 9, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Move(append([]string(nil), tc.in...), tc.from, tc.offset)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDestination(t *testing.T) {
	require.Equal(t, 3, destination(1, 2))
	require.Equal(t, 0, destination(2, 0))
}
