// Package reorder implements a drag-and-drop reorderable list that is
// independent of any particular UI toolkit. Hosts translate their pointer
// or keyboard gestures into DragStart, DragEnter and Drop calls and render
// rows through Render.
//
// A List is not safe for concurrent use; it expects to be driven from a
// single event loop.
package reorder

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// DragState is the transient state of a drag gesture.
type DragState[T comparable] struct {
	Dragged  T
	Dragging bool
	HasMoved bool
}

// Payload is the opaque transfer token exposed when a drag starts. Only
// Session identity matters; Text is informational.
type Payload struct {
	Session string
	Text    string
}

// List is the reorderable list component.
type List[T comparable] struct {
	items   Binding[[]T]
	enabled Binding[bool]
	store   Store[T]
	onMove  func(from, to int)
	log     *slog.Logger

	state DragState[T]
}

// Option configures a List.
type Option[T comparable] func(*List[T])

// WithStore enables sort-index synchronization against s.
func WithStore[T comparable](s Store[T]) Option[T] {
	return func(l *List[T]) { l.store = s }
}

// WithLogger sets the logger used for swallowed store errors.
func WithLogger[T comparable](log *slog.Logger) Option[T] {
	return func(l *List[T]) {
		if log != nil {
			l.log = log
		}
	}
}

// OnMove registers a hook called after every in-memory move with the
// source and target indexes.
func OnMove[T comparable](fn func(from, to int)) Option[T] {
	return func(l *List[T]) { l.onMove = fn }
}

// New builds a List over the caller's items and enabled flag.
func New[T comparable](items Binding[[]T], enabled Binding[bool], opts ...Option[T]) *List[T] {
	l := &List[T]{
		items:   items,
		enabled: enabled,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Enabled reports whether drag behaviour is attached.
func (l *List[T]) Enabled() bool { return l.enabled.Get() }

// SetEnabled writes through the enabled binding.
func (l *List[T]) SetEnabled(v bool) { l.enabled.Set(v) }

// State returns a snapshot of the drag state.
func (l *List[T]) State() DragState[T] { return l.state }

// Render calls tmpl once per item in order. draggedOver is true only for
// the dragged item once the pointer has entered another target.
func (l *List[T]) Render(tmpl func(item T, draggedOver bool) string) []string {
	items := l.items.Get()
	out := make([]string, 0, len(items))
	if !l.Enabled() {
		for _, it := range items {
			out = append(out, tmpl(it, false))
		}
		return out
	}
	for _, it := range items {
		over := l.state.Dragging && l.state.HasMoved && it == l.state.Dragged
		out = append(out, tmpl(it, over))
	}
	return out
}

// DragStart begins dragging item. It returns false when reordering is
// disabled or item is not in the list.
func (l *List[T]) DragStart(item T) (Payload, bool) {
	if !l.Enabled() {
		return Payload{}, false
	}
	if !slices.Contains(l.items.Get(), item) {
		return Payload{}, false
	}
	l.state = DragState[T]{Dragged: item, Dragging: true}
	return Payload{Session: uuid.NewString(), Text: fmt.Sprint(item)}, true
}

// DragEnter handles the pointer entering target while a drag is in
// progress. It reports whether the list order changed.
func (l *List[T]) DragEnter(target T) bool {
	if !l.Enabled() || !l.state.Dragging || target == l.state.Dragged {
		return false
	}
	items := l.items.Get()
	from := slices.Index(items, l.state.Dragged)
	to := slices.Index(items, target)
	if from < 0 || to < 0 {
		return false
	}
	l.state.HasMoved = true
	if items[to] == l.state.Dragged {
		return false
	}

	l.items.Set(Move(items, from, destination(from, to)))
	if l.onMove != nil {
		l.onMove(from, to)
	}
	l.syncStore(l.state.Dragged, target)
	return true
}

// Drop ends the drag, whether or not anything moved.
func (l *List[T]) Drop() {
	l.state = DragState[T]{}
}

// Cancel ends the drag without a drop target. Moves already applied are
// kept.
func (l *List[T]) Cancel() { l.Drop() }

func (l *List[T]) syncStore(dragged, target T) {
	if l.store == nil {
		return
	}
	a, ok := l.store.Record(dragged)
	if !ok {
		return
	}
	b, ok := l.store.Record(target)
	if !ok {
		return
	}
	swapSortIndex(a, b)
	if !l.store.HasChanges() {
		return
	}
	if err := l.store.Commit(); err != nil {
		// best effort: memory and store may now disagree
		l.log.Warn("commit sort index", "dragged", fmt.Sprint(dragged), "target", fmt.Sprint(target), "err", err)
	}
}
