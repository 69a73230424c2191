package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// withStore opens the configured store, runs fn, commits and closes.
func (a *app) withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	ctx := cmd.Context()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return err
	}
	if err := s.CommitContext(ctx); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func newListCmd(a *app) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Args:  exactArgs(0, "tada ls [--group]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				printList(s.Items(), group)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a new item (title can be multiple words)",
		Example: `  tada add "Buy milk"`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("tada add <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				if _, err := s.Add(strings.Join(args, " ")); err != nil {
					return usagef("add: %v", err)
				}
				ui.OK("added")
				return nil
			})
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for item at 1-based index",
		Args:  exactArgs(1, "tada done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				it, err := itemAt(s.Items(), args[0], "done")
				if err != nil {
					return err
				}
				if err := s.Toggle(it.ID); err != nil {
					return err
				}
				ui.OK("toggled")
				return nil
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove item at 1-based index",
		Args:  exactArgs(1, "tada rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				it, err := itemAt(s.Items(), args[0], "rm")
				if err != nil {
					return err
				}
				if err := s.Remove(it.ID); err != nil {
					return err
				}
				ui.OK("removed")
				return nil
			})
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list; drag rows with the mouse or grab them with enter",
		Args:  exactArgs(0, "tada tui"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return tui.Run(cmd.Context(), s, tui.Options{
				Reorder: a.cfg.Reorder.Enabled,
				Sync:    a.cfg.Reorder.Sync,
				Logger:  a.log,
			})
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  exactArgs(0, "tada config [--write]"),
		RunE: func(*cobra.Command, []string) error {
			c := a.cfg
			ui.Panel([]string{
				ui.C(ui.Current().Title, "Config") + "  " + ui.C(ui.Current().Muted, config.Path()),
				"",
				"store.backend    " + c.Store.Backend,
				"store.path       " + c.Store.Path,
				"ui.theme         " + c.UI.Theme,
				"ui.color         " + c.UI.Color,
				"reorder.enabled  " + strconv.FormatBool(c.Reorder.Enabled),
				"reorder.sync     " + strconv.FormatBool(c.Reorder.Sync),
				"log.file         " + c.Log.File,
				"log.level        " + c.Log.Level,
			})
			if !write {
				return nil
			}
			if err := config.Save(c); err != nil {
				return err
			}
			ui.OK("config written")
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the effective configuration to the config file")
	return cmd
}

// itemAt resolves a 1-based index argument.
func itemAt(items []*model.Item, arg, verb string) (*model.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, usagef("%s: not a number: %s", verb, arg)
	}
	if n < 1 || n > len(items) {
		ui.Hint("run `tada ls` to see valid indexes")
		return nil, usagef("index out of range: have %d, got %d", len(items), n)
	}
	return items[n-1], nil
}

// -------------- rendering helpers --------------

func printList(items []*model.Item, group bool) {
	t := ui.Current()
	d, p := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: reorder with `tada mv 3 1` or drag rows in `tada tui`"))
	ui.Panel(lines)
}

// flatLines numbers items from 1; numbers match `done`/`rm` indexes only
// in the ungrouped view.
func flatLines(items []*model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box, color := t.BoxUnchecked, t.Muted
		if it.Done {
			box, color = t.BoxChecked, t.Success
		}
		title := it.Title
		if len([]rune(title)) > 80 {
			title = string([]rune(title)[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s", ui.C(ui.Dim, idx), ui.C(color, box), title))
	}
	return out
}

func groupLines(items []*model.Item) []string {
	var pend, done []*model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	section := func(name string, items []*model.Item) []string {
		lines := []string{ui.C(t.Accent, name)}
		if len(items) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
