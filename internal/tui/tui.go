// Package tui hosts the reorderable todo list in a Bubble Tea program.
// Mouse drags and keyboard grabs are both translated into reorder.List
// gestures.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options tune the interactive list.
type Options struct {
	Reorder bool // drag-and-drop starts enabled
	Sync    bool // swap stored sort indices on every move
	Logger  *slog.Logger
}

// rowsTop is the screen line of the first row: border, header, blank.
const rowsTop = 3

// chrome is the number of lines around the rows: borders, header, blank,
// blank, help.
const chrome = 6

// session is the state shared by every copy of Model. Bubble Tea passes
// models by value, but the list binds to order by reference.
type session struct {
	store     *store.Store
	order     []string
	reorderOn bool
	list      *reorder.List[string]
	moved     bool
	log       *slog.Logger
}

// Model is the Bubble Tea model.
type Model struct {
	s    *session
	opts Options

	cursor    int
	offset    int
	grabbed   bool // keyboard drag
	mouseDrag bool

	// inline add/edit share one text input
	adding    bool
	editing   bool
	editID    string
	ti        textinput.Model
	inputErr  string
	changed   bool
	statusMsg string

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New builds the model over st. Rows start in store order.
func New(st *store.Store, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &session{
		store:     st,
		order:     model.IDs(st.Items()),
		reorderOn: opts.Reorder,
		log:       log,
	}
	listOpts := []reorder.Option[string]{
		reorder.WithLogger[string](log),
		reorder.OnMove[string](func(from, to int) {
			s.moved = true
			log.Debug("moved", "from", from, "to", to)
		}),
	}
	if opts.Sync {
		listOpts = append(listOpts, reorder.WithStore[string](st))
	}
	s.list = reorder.New[string](reorder.NewRef(&s.order), reorder.NewRef(&s.reorderOn), listOpts...)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{
		s:      s,
		opts:   opts,
		ti:     ti,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// Order returns the current row order as item IDs.
func (m Model) Order() []string { return slices.Clone(m.s.order) }

// ReorderEnabled reports the reorder toggle.
func (m Model) ReorderEnabled() bool { return m.s.reorderOn }

// Dragging reports whether a drag gesture is in progress.
func (m Model) Dragging() bool { return m.s.list.State().Dragging }

// Changed reports edits that still need saving on exit.
func (m Model) Changed() bool { return m.changed || m.s.moved }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.endDrag()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.grabbed || m.mouseDrag {
			m.s.list.Cancel()
			m.grabbed, m.mouseDrag = false, false
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.step(-1)
	case key.Matches(msg, m.keys.Down):
		m.step(1)

	case key.Matches(msg, m.keys.Grab):
		if m.grabbed {
			m.endDrag()
			return m, nil
		}
		if id, ok := m.current(); ok {
			if _, ok := m.s.list.DragStart(id); ok {
				m.grabbed = true
			} else if !m.s.reorderOn {
				m.statusMsg = "reordering is off (r to enable)"
			}
		}

	case key.Matches(msg, m.keys.Reorder):
		m.endDrag()
		m.s.list.SetEnabled(!m.s.reorderOn)

	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.current(); ok {
			if err := m.s.store.Toggle(id); err == nil {
				m.changed = true
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if m.grabbed {
			return m, nil
		}
		if id, ok := m.current(); ok {
			if err := m.s.store.Remove(id); err == nil {
				m.s.order = slices.DeleteFunc(m.s.order, func(s string) bool { return s == id })
				m.changed = true
				m.cursor = min(m.cursor, len(m.s.order)-1)
				m.cursor = max(m.cursor, 0)
				m.clampOffset()
			}
		}

	case key.Matches(msg, m.keys.Add):
		m.endDrag()
		m.adding = true
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New item title..."
		m.ti.Focus()

	case key.Matches(msg, m.keys.Edit):
		if id, ok := m.current(); ok {
			it, _ := m.s.store.Get(id)
			m.endDrag()
			m.editing = true
			m.editID = id
			m.inputErr = ""
			m.ti.SetValue(it.Title)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit item title..."
			m.ti.Focus()
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// step moves the cursor; while grabbed, the row under the new cursor is
// the drop target and the cursor follows the dragged item.
func (m *Model) step(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.s.order) {
		return
	}
	if !m.grabbed {
		m.cursor = next
		m.clampOffset()
		return
	}
	m.s.list.DragEnter(m.s.order[next])
	m.followDragged()
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	row, onRow := m.rowAt(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
			return m
		case tea.MouseButtonWheelDown:
			m.scroll(1)
			return m
		case tea.MouseButtonLeft:
		default:
			return m
		}
		if !onRow {
			return m
		}
		m.cursor = row
		if m.grabbed {
			return m
		}
		if _, ok := m.s.list.DragStart(m.s.order[row]); ok {
			m.mouseDrag = true
		}
	case tea.MouseActionMotion:
		if !m.mouseDrag || !onRow {
			return m
		}
		m.s.list.DragEnter(m.s.order[row])
		m.followDragged()
	case tea.MouseActionRelease:
		if m.mouseDrag {
			m.endDrag()
		}
	}
	return m
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			if m.adding {
				it, err := m.s.store.Add(title)
				if err != nil {
					m.inputErr = err.Error()
					return m, nil
				}
				m.s.order = append(m.s.order, it.ID)
				m.cursor = len(m.s.order) - 1
				m.clampOffset()
			} else if err := m.s.store.Rename(m.editID, title); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.changed = true
			m.closeInput()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding, m.editing = false, false
	m.editID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

// endDrag completes any gesture in progress.
func (m *Model) endDrag() {
	if m.grabbed || m.mouseDrag {
		m.s.list.Drop()
	}
	m.grabbed, m.mouseDrag = false, false
}

func (m *Model) followDragged() {
	st := m.s.list.State()
	if i := slices.Index(m.s.order, st.Dragged); st.Dragging && i >= 0 {
		m.cursor = i
	}
	m.clampOffset()
}

func (m Model) current() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.s.order) {
		return "", false
	}
	return m.s.order[m.cursor], true
}

func (m Model) visibleRows() int {
	h := m.height - chrome
	if m.adding || m.editing {
		h -= 3
	}
	if m.help.ShowAll {
		h -= 3
	}
	return max(h, 1)
}

func (m *Model) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, len(m.s.order)-rows))
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.offset = max(0, min(m.offset, len(m.s.order)-m.visibleRows()))
}

// rowAt maps a screen line to a row index.
func (m Model) rowAt(y int) (int, bool) {
	i := y - rowsTop
	if i < 0 || i >= m.visibleRows() {
		return 0, false
	}
	i += m.offset
	if i >= len(m.s.order) {
		return 0, false
	}
	return i, true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	lines := m.s.list.Render(m.renderRow)
	if len(lines) == 0 {
		b.WriteString(mutedStyle.Render("no items, press a to add one"))
		b.WriteString("\n")
	}
	end := min(m.offset+m.visibleRows(), len(lines))
	for _, ln := range lines[m.offset:end] {
		b.WriteString(ln)
		b.WriteString("\n")
	}

	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + errorStyle.Render(m.inputErr)
		}
		b.WriteString(inputStyle.Render(title + "\n" + m.ti.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(errorStyle.Render(m.statusMsg) + "  ")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return panelStyle.Width(max(m.width-2, 20)).Render(b.String())
}

func (m Model) header() string {
	items := m.s.store.Items()
	dn, pn := model.Stats(items)
	mode := mutedStyle.Render("reorder off")
	if m.s.reorderOn {
		mode = accentStyle.Render("reorder on")
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), dn,
		pendingStyle.Render("•"), pn,
		accentStyle.Render("Total"), len(items),
		mode,
	)
}

// renderRow is the per-item template handed to the list.
func (m Model) renderRow(id string, draggedOver bool) string {
	it, ok := m.s.store.Get(id)
	if !ok {
		return mutedStyle.Render("  (missing)")
	}
	t := ui.Current()

	box := mutedStyle.Render(t.BoxUnchecked)
	text := it.Title
	if it.Done {
		box = successStyle.Render(t.BoxChecked)
		text = doneStyle.Render(text)
	}

	grip := ""
	if m.s.reorderOn {
		grip = mutedStyle.Render(t.Grip) + " "
	}

	isCursor := m.cursor < len(m.s.order) && m.s.order[m.cursor] == id
	prefix := "  "
	switch {
	case draggedOver:
		prefix = grabStyle.Render("↕ ")
		text = draggedStyle.Render(it.Title)
	case isCursor && (m.grabbed || m.mouseDrag):
		prefix = grabStyle.Render("↕ ")
	case isCursor:
		prefix = selectedStyle.Render("> ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, grip, box, " ", text)
}

// Run starts the program and saves on exit. With sync on, moves were
// already written while dragging; with sync off the final row order is
// written back as sort indices.
func Run(ctx context.Context, st *store.Store, opts Options) error {
	m := New(st, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := final.(Model)
	if !ok {
		return nil
	}
	return fm.Save(ctx)
}

// Save persists pending edits.
func (m Model) Save(ctx context.Context) error {
	if !m.Changed() && !m.s.store.HasChanges() {
		return nil
	}
	if m.s.moved && !m.opts.Sync {
		m.s.store.Renumber(m.s.order)
	}
	if err := m.s.store.CommitContext(ctx); err != nil {
		return err
	}
	ui.OK("saved")
	return nil
}
