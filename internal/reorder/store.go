package reorder

// SortIndexed is a record carrying an external ordering key.
type SortIndexed interface {
	SortIndex() int
	SetSortIndex(int)
}

// Store is the optional external collaborator. The list never creates or
// owns it; it only swaps sort indices of records it hands out and asks it
// to commit.
type Store[T comparable] interface {
	// Record returns the record backing item, if any.
	Record(item T) (SortIndexed, bool)
	// HasChanges reports whether Commit has anything to write.
	HasChanges() bool
	Commit() error
}

// swapSortIndex exchanges the external ordering keys of two records.
func swapSortIndex(a, b SortIndexed) {
	ai, bi := a.SortIndex(), b.SortIndex()
	a.SetSortIndex(bi)
	b.SetSortIndex(ai)
}
