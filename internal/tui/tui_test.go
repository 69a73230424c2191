package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

type memBackend struct {
	items  []*model.Item
	writes int
}

func (b *memBackend) Load(context.Context) ([]*model.Item, error) { return b.items, nil }

func (b *memBackend) Write(_ context.Context, all, _ []*model.Item, _ []string) error {
	b.writes++
	b.items = all
	return nil
}

func (b *memBackend) Close() error { return nil }

func fruitStore(t *testing.T) (*store.Store, *memBackend) {
	t.Helper()
	b := &memBackend{items: []*model.Item{
		{ID: "apple", Title: "Apple", SortIndex: 0},
		{ID: "orange", Title: "Orange", SortIndex: 1},
		{ID: "banana", Title: "Banana", SortIndex: 2},
	}}
	s, err := store.Open(context.Background(), b)
	require.NoError(t, err)
	return s, b
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func mouse(action tea.MouseAction, row int) tea.MouseMsg {
	return tea.MouseMsg{X: 4, Y: rowsTop + row, Action: action, Button: tea.MouseButtonLeft}
}

func apply(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func sortIndex(t *testing.T, s *store.Store, id string) int {
	t.Helper()
	it, ok := s.Get(id)
	require.True(t, ok)
	return it.SortIndex
}

func TestKeyboardDragForward(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true, Sync: true})

	m = apply(t, m, keyMsg("j"), keyMsg("enter"))
	require.True(t, m.Dragging())

	m = apply(t, m, keyMsg("j"))
	require.Equal(t, []string{"apple", "banana", "orange"}, m.Order())
	require.Equal(t, 2, m.cursor)

	m = apply(t, m, keyMsg("enter"))
	require.False(t, m.Dragging())
	require.Equal(t, 2, sortIndex(t, st, "orange"))
	require.Equal(t, 1, sortIndex(t, st, "banana"))
}

func TestMouseDragBackward(t *testing.T) {
	st, b := fruitStore(t)
	m := New(st, Options{Reorder: true, Sync: true})

	m = apply(t, m, mouse(tea.MouseActionPress, 2))
	require.True(t, m.Dragging())
	m = apply(t, m, mouse(tea.MouseActionMotion, 0))
	require.Equal(t, []string{"banana", "apple", "orange"}, m.Order())
	require.Contains(t, m.View(), "↕")

	m = apply(t, m, mouse(tea.MouseActionRelease, 0))
	require.False(t, m.Dragging())
	require.Equal(t, 0, sortIndex(t, st, "banana"))
	require.Equal(t, 2, sortIndex(t, st, "apple"))
	require.Equal(t, 1, b.writes, "each move commits the swap")
}

func TestReorderToggleBlocksDrags(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true})

	m = apply(t, m, keyMsg("r"))
	require.False(t, m.ReorderEnabled())
	require.Contains(t, m.View(), "reorder off")

	m = apply(t, m,
		mouse(tea.MouseActionPress, 0),
		mouse(tea.MouseActionMotion, 2),
		mouse(tea.MouseActionRelease, 2),
	)
	require.Equal(t, []string{"apple", "orange", "banana"}, m.Order())

	m = apply(t, m, keyMsg("enter"))
	require.False(t, m.Dragging())
	require.Contains(t, m.statusMsg, "reordering is off")
}

func TestToggleDuringDragDropsIt(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true})

	m = apply(t, m, keyMsg("enter"), keyMsg("r"))
	require.False(t, m.Dragging())
	require.False(t, m.grabbed)
}

func TestEscReleasesGrabKeepingMoves(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true})

	m = apply(t, m, keyMsg("enter"), keyMsg("j"), keyMsg("esc"))
	require.False(t, m.Dragging())
	require.Equal(t, []string{"orange", "apple", "banana"}, m.Order())
}

func TestMotionOutsideRowsIsIgnored(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true})

	m = apply(t, m, mouse(tea.MouseActionPress, 0), mouse(tea.MouseActionMotion, 10))
	require.True(t, m.Dragging())
	require.Equal(t, []string{"apple", "orange", "banana"}, m.Order())
}

func TestAddEditToggleDelete(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true})

	m = apply(t, m, keyMsg("a"), keyMsg("Kiwi"), keyMsg("enter"))
	require.False(t, m.adding)
	require.Len(t, m.Order(), 4)
	require.Equal(t, 3, m.cursor)
	require.True(t, m.Changed())

	m = apply(t, m, keyMsg("a"), keyMsg("enter"))
	require.True(t, m.adding)
	require.Equal(t, "Title cannot be empty", m.inputErr)
	m = apply(t, m, keyMsg("esc"))
	require.False(t, m.adding)

	kiwi := m.Order()[3]
	m = apply(t, m, keyMsg("e"), keyMsg("!"), keyMsg("enter"))
	it, _ := st.Get(kiwi)
	require.Equal(t, "Kiwi!", it.Title)

	m = apply(t, m, keyMsg(" "))
	require.True(t, it.Done)

	m = apply(t, m, keyMsg("d"))
	require.Equal(t, []string{"apple", "orange", "banana"}, m.Order())
	require.Equal(t, 2, m.cursor)
}

func TestSaveRenumbersWhenSyncIsOff(t *testing.T) {
	var out bytes.Buffer
	prev := ui.Out
	ui.Out = &out
	t.Cleanup(func() { ui.Out = prev })

	st, b := fruitStore(t)
	m := New(st, Options{Reorder: true, Sync: false})

	m = apply(t, m, keyMsg("enter"), keyMsg("j"), keyMsg("j"), keyMsg("enter"))
	require.Equal(t, []string{"orange", "banana", "apple"}, m.Order())
	require.Equal(t, 0, b.writes)
	require.Equal(t, 0, sortIndex(t, st, "apple"))

	require.NoError(t, m.Save(context.Background()))
	require.Equal(t, 1, b.writes)
	require.Equal(t, []string{"orange", "banana", "apple"}, model.IDs(model.Sorted(b.items)))
	require.Contains(t, out.String(), "saved")
}

func TestSaveWithoutChangesWritesNothing(t *testing.T) {
	st, b := fruitStore(t)
	m := New(st, Options{Reorder: true})
	require.NoError(t, m.Save(context.Background()))
	require.Equal(t, 0, b.writes)
}

func TestViewListsItems(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{Reorder: true})
	m = apply(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	v := m.View()
	for _, title := range []string{"Apple", "Orange", "Banana", "reorder on", "Total"} {
		require.True(t, strings.Contains(v, title), title)
	}
}

func TestQuit(t *testing.T) {
	st, _ := fruitStore(t)
	m := New(st, Options{})
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
