// Command saveedit inspects and edits the save slot.
//
// Usage:
//
//	saveedit show
//	saveedit set-health N
//	saveedit set-level N   (1-based; the roster becomes the level's manifest)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/internal/logging"
	"github.com/skirmish-game/skirmish/internal/save"
	"github.com/skirmish-game/skirmish/internal/storage"
	"github.com/skirmish-game/skirmish/pkg/core"
)

const usage = "usage: saveedit show | set-health N | set-level N"

// editor holds what the commands need.
type editor struct {
	saves     *save.Manager
	catalog   *level.Catalog
	maxHealth int
	out       io.Writer
}

func main() {
	zlog := logging.NewZerolog(os.Stderr, "warn")
	if err := config.Load("."); err != nil {
		zlog.Debug().Err(err).Msg("Using default config")
	}

	e, closeFn, err := open(zlog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = e.run(os.Args[1:])
	closeFn()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func open(zlog zerolog.Logger) (*editor, func(), error) {
	catalog := level.Default()
	if path := config.GetString("levels.file"); path != "" {
		c, err := level.Load(path)
		if err != nil {
			return nil, nil, err
		}
		catalog = c
	}

	backend, err := storage.NewBackend(config.GetStorageConfig(), zlog)
	if err != nil {
		return nil, nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, nil, err
	}
	codec, err := save.NewCodec(config.GetSaveConfig().Compress)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	saves, err := save.NewManager(save.Dependencies{
		Backend: backend,
		Codec:   codec,
		Slot:    config.GetSaveConfig().Slot,
	})
	if err != nil {
		codec.Close()
		_ = backend.Close()
		return nil, nil, err
	}

	closeFn := func() {
		codec.Close()
		_ = backend.Close()
	}
	return &editor{
		saves:     saves,
		catalog:   catalog,
		maxHealth: config.GetTuning().PlayerMaxHealth,
		out:       os.Stdout,
	}, closeFn, nil
}

func (e *editor) run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch strings.ToLower(args[0]) {
	case "show":
		return e.show()
	case "set-health":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if err := e.saves.Edit(save.SetPlayerHealth(n, e.maxHealth)); err != nil {
			return err
		}
		return e.show()
	case "set-level":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if n < 1 || n > e.catalog.Len() {
			return fmt.Errorf("level must be between 1 and %d", e.catalog.Len())
		}
		if err := e.saves.Edit(save.SetLevel(e.catalog, n-1)); err != nil {
			return err
		}
		return e.show()
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s needs a number\n%s", args[0], usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[1], err)
	}
	return n, nil
}

func (e *editor) show() error {
	s, err := e.saves.Read()
	if err != nil {
		return err
	}

	counts := map[core.CombatantKind]int{}
	for _, r := range s.Roster {
		counts[r.Kind]++
	}

	fmt.Fprintf(e.out, "slot:     %s\n", e.saves.Location())
	fmt.Fprintf(e.out, "version:  %d\n", s.Version)
	fmt.Fprintf(e.out, "saved at: %s\n", s.SavedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(e.out, "level:    %d/%d\n", s.CurrentLevelIndex+1, e.catalog.Len())
	fmt.Fprintf(e.out, "health:   %d/%d\n", s.PlayerHealth, e.maxHealth)
	fmt.Fprintf(e.out, "position: %.2f %.2f %.2f\n", s.PlayerPosition.X, s.PlayerPosition.Y, s.PlayerPosition.Z)
	fmt.Fprintf(e.out, "enemies:  %d\n", len(s.Roster))
	for _, k := range core.AllKinds {
		if counts[k] > 0 {
			fmt.Fprintf(e.out, "  %-16s %d\n", k, counts[k])
		}
	}
	return nil
}
