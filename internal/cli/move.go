package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// maxSuggestDistance bounds how far a typo may be from a real title.
const maxSuggestDistance = 3

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <item> <onto>",
		Short: "Drag an item onto another (1-based index or title)",
		Long: `Drag <item> onto <onto> as if with the mouse. Moving up lands on the
target's slot; moving down lands just after the target.`,
		Example: `  tada mv 3 1
  tada mv "Buy milk" "Walk dog"`,
		Args: exactArgs(2, "tada mv <item> <onto>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				items := s.Items()
				src, err := resolve(items, args[0])
				if err != nil {
					return err
				}
				dst, err := resolve(items, args[1])
				if err != nil {
					return err
				}
				if !dragOnto(s, src.ID, dst.ID) {
					ui.OK("nothing to move")
					return nil
				}
				a.log.Info("moved", "item", src.Title, "onto", dst.Title)
				ui.OK(fmt.Sprintf("moved %q", src.Title))
				return nil
			})
		},
	}
}

// dragOnto replays one drag gesture against the stored order and writes
// the resulting order back in full. A one-shot command has no in-memory
// view to keep, so sort indices are renumbered instead of swapped.
func dragOnto(s *store.Store, src, dst string) bool {
	order := model.IDs(s.Items())
	l := reorder.New[string](reorder.NewRef(&order), reorder.Const[bool]{V: true})
	if _, ok := l.DragStart(src); !ok {
		return false
	}
	moved := l.DragEnter(dst)
	l.Drop()
	if moved {
		s.Renumber(order)
	}
	return moved
}

// resolve finds an item by 1-based index, then by case-insensitive title.
func resolve(items []*model.Item, arg string) (*model.Item, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(items) {
			ui.Hint("run `tada ls` to see valid indexes")
			return nil, usagef("index out of range: have %d, got %d", len(items), n)
		}
		return items[n-1], nil
	}
	for _, it := range items {
		if strings.EqualFold(it.Title, arg) {
			return it, nil
		}
	}
	if s, ok := suggest(items, arg); ok {
		ui.Hint(fmt.Sprintf("did you mean %q?", s))
	}
	return nil, fmt.Errorf("%q: %w", arg, store.ErrNotFound)
}

// suggest returns the title closest to arg, if any is close enough.
func suggest(items []*model.Item, arg string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	needle := strings.ToLower(arg)
	for _, it := range items {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(it.Title))
		if d < bestDist {
			best, bestDist = it.Title, d
		}
	}
	return best, best != ""
}
