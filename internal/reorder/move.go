package reorder

import "slices"

// Move relocates s[from] so that it ends up before the element that was at
// offset in the original slice (offset == len(s) appends). Offsets are
// expressed in pre-removal indexing, so Move(s, 1, 3) on a three-element
// slice puts the second element last. Out-of-range input returns s
// unchanged.
func Move[T any](s []T, from, offset int) []T {
	if from < 0 || from >= len(s) || offset < 0 || offset > len(s) {
		return s
	}
	if offset == from || offset == from+1 {
		return s
	}
	v := s[from]
	s = slices.Delete(s, from, from+1)
	if offset > from {
		offset--
	}
	return slices.Insert(s, offset, v)
}

// destination returns the pre-removal offset for dropping the item at from
// onto the item at to: moving backwards lands on the target slot, moving
// forwards lands just past it.
func destination(from, to int) int {
	if to > from {
		return to + 1
	}
	return to
}
