// Package cli wires the tada command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
	"github.com/idilsaglam/tada/internal/ui"
)

// ErrUsage marks errors caused by bad arguments; they exit with code 2.
var ErrUsage = errors.New("usage")

func usagef(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, a...)...)
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    config.Config
	log    *slog.Logger
	closer io.Closer
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	var (
		b   store.Backend
		err error
	)
	switch a.cfg.Store.Backend {
	case "sqlite":
		path := a.cfg.Store.Path
		if path == "" {
			path = "tada.db"
		}
		b, err = sqlitestore.Open(path)
	default:
		b, err = jsonstore.New(a.cfg.Store.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", a.cfg.Store.Backend, err)
	}
	s, err := store.Open(ctx, b)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	a.log.Debug("store opened", "backend", a.cfg.Store.Backend, "items", len(s.Items()))
	return s, nil
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tada",
		Short:         "tada - a tiny todo list you can reorder by dragging",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(ui.Err)
			_ = cmd.Help()
			return usagef("missing subcommand")
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetString("store"); v != "" {
				cfg.Store.Backend = v
			}
			if v, _ := cmd.Flags().GetString("file"); v != "" {
				cfg.Store.Path = v
			}
			if err := cfg.Validate(); err != nil {
				return usagef("%v", err)
			}
			ui.SetTheme(cfg.UI.Theme)
			ui.SetColorMode(cfg.UI.Color)

			log, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return err
			}
			a.cfg, a.log, a.closer = cfg, log, closer
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usagef("%v", err) })
	root.PersistentFlags().String("store", "", "store backend: json or sqlite (overrides config)")
	root.PersistentFlags().String("file", "", "store file path (overrides config)")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newMoveCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(ctx context.Context, args []string) int {
	root := NewRoot()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(err.Error())
		if isUsage(err) {
			return 2
		}
		return 1
	}
	return 0
}

// cobra reports unknown subcommands as plain errors.
func isUsage(err error) bool {
	return errors.Is(err, ErrUsage) || strings.HasPrefix(err.Error(), "unknown command")
}

// exactArgs is cobra.ExactArgs with a usage line and exit code 2.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("%s", usage)
		}
		return nil
	}
}
