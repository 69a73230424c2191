package model

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Item is the domain model for a todo entry.
// SortIndex is the persisted display order; it can drift from the order a
// list view holds in memory.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	SortIndex int    `json:"sort_index"`
}

// New returns a pending item with a fresh ID.
func New(title string, sortIndex int) *Item {
	return &Item{ID: uuid.NewString(), Title: strings.TrimSpace(title), SortIndex: sortIndex}
}

// Sorted orders items by SortIndex, keeping load order for ties.
func Sorted(items []*Item) []*Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b *Item) int { return a.SortIndex - b.SortIndex })
	return out
}

// NextSortIndex is one past the highest SortIndex in items.
func NextSortIndex(items []*Item) int {
	n := 0
	for _, it := range items {
		if it.SortIndex >= n {
			n = it.SortIndex + 1
		}
	}
	return n
}

// Stats counts done and pending items.
func Stats(items []*Item) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// IDs returns the item IDs in order.
func IDs(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
