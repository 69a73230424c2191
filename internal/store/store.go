// Package store keeps todo items in memory, tracks edits and writes them
// back through a Backend on Commit. It is the external record store the
// reorderable list synchronizes sort indices against.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
)

var (
	ErrNotFound   = errors.New("item not found")
	ErrEmptyTitle = errors.New("empty title")
)

// Backend persists items. Write receives the full item set plus the
// records touched since the last successful write, so backends can choose
// between rewriting everything and applying a delta.
type Backend interface {
	Load(ctx context.Context) ([]*model.Item, error)
	Write(ctx context.Context, all, changed []*model.Item, removed []string) error
	Close() error
}

// Store is not safe for concurrent use.
type Store struct {
	backend Backend
	items   []*model.Item
	byID    map[string]*model.Item
	changed map[string]bool
	removed []string
}

// Open loads every item from b, ordered by sort index.
func Open(ctx context.Context, b Backend) (*Store, error) {
	items, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	s := &Store{
		backend: b,
		byID:    make(map[string]*model.Item, len(items)),
		changed: map[string]bool{},
	}
	// files written before items carried IDs keep their file order
	legacy := false
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
			s.changed[it.ID] = true
			legacy = true
		}
	}
	if legacy {
		for i, it := range items {
			it.SortIndex = i
			s.changed[it.ID] = true
		}
	}
	s.items = model.Sorted(items)
	for _, it := range s.items {
		s.byID[it.ID] = it
	}
	return s, nil
}

// Items returns the items in load order followed by additions.
func (s *Store) Items() []*model.Item { return slices.Clone(s.items) }

func (s *Store) Get(id string) (*model.Item, bool) {
	it, ok := s.byID[id]
	return it, ok
}

// Add appends a new pending item after the current highest sort index.
func (s *Store) Add(title string) (*model.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	it := model.New(title, model.NextSortIndex(s.items))
	s.items = append(s.items, it)
	s.byID[it.ID] = it
	s.changed[it.ID] = true
	return it, nil
}

// Update applies fn to the item with id and marks it changed.
func (s *Store) Update(id string, fn func(*model.Item)) error {
	it, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	fn(it)
	s.changed[id] = true
	return nil
}

// Rename sets a new title.
func (s *Store) Rename(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	return s.Update(id, func(it *model.Item) { it.Title = title })
}

// Toggle flips the done flag.
func (s *Store) Toggle(id string) error {
	return s.Update(id, func(it *model.Item) { it.Done = !it.Done })
}

func (s *Store) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	delete(s.byID, id)
	delete(s.changed, id)
	s.items = slices.DeleteFunc(s.items, func(it *model.Item) bool { return it.ID == id })
	s.removed = append(s.removed, id)
	return nil
}

// Renumber assigns sort indices 0..n-1 following order. IDs not in the
// store are skipped.
func (s *Store) Renumber(order []string) {
	n := 0
	for _, id := range order {
		it, ok := s.byID[id]
		if !ok {
			continue
		}
		if it.SortIndex != n {
			it.SortIndex = n
			s.changed[id] = true
		}
		n++
	}
}

// Record exposes the sort index of the item with id.
func (s *Store) Record(id string) (reorder.SortIndexed, bool) {
	it, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &record{s: s, it: it}, true
}

func (s *Store) HasChanges() bool {
	return len(s.changed) > 0 || len(s.removed) > 0
}

// Commit writes pending changes with a background context.
func (s *Store) Commit() error { return s.CommitContext(context.Background()) }

// CommitContext writes pending changes. On failure they stay pending.
func (s *Store) CommitContext(ctx context.Context) error {
	if !s.HasChanges() {
		return nil
	}
	changed := make([]*model.Item, 0, len(s.changed))
	for _, it := range s.items {
		if s.changed[it.ID] {
			changed = append(changed, it)
		}
	}
	if err := s.backend.Write(ctx, s.Items(), changed, slices.Clone(s.removed)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	clear(s.changed)
	s.removed = s.removed[:0]
	return nil
}

func (s *Store) Close() error { return s.backend.Close() }

// record adapts an item to reorder.SortIndexed and tracks the write.
type record struct {
	s  *Store
	it *model.Item
}

func (r *record) SortIndex() int { return r.it.SortIndex }

func (r *record) SetSortIndex(i int) {
	r.it.SortIndex = i
	r.s.changed[r.it.ID] = true
}

var _ reorder.Store[string] = (*Store)(nil)
