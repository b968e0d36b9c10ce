// Package session runs one play session: it owns the world, routes the
// save, load and start commands through the dispatcher and keeps a status
// copy for the controls surface.
package session

import (
	"errors"
	"log/slog"

	"github.com/skirmish-game/skirmish/internal/dispatcher"
	"github.com/skirmish-game/skirmish/internal/game"
	"github.com/skirmish-game/skirmish/internal/save"
)

// Commands handled by the session.
const (
	CommandSave  = ":SAVE:"
	CommandLoad  = ":LOAD:"
	CommandStart = ":START:"
)

// Dependencies holds the collaborators of a Session.
type Dependencies struct {
	World      *game.World
	Saves      *save.Manager
	Dispatcher *dispatcher.Dispatcher
	Logger     *slog.Logger
	Context    *Context
}

// Session drives a World from controls input.
type Session struct {
	world  *game.World
	saves  *save.Manager
	disp   *dispatcher.Dispatcher
	log    *slog.Logger
	ctx    *Context
	closer []func() error
}

// New creates a session and registers its command handlers.
func New(deps Dependencies) (*Session, error) {
	if deps.World == nil {
		return nil, errors.New("session needs a world")
	}
	if deps.Saves == nil {
		return nil, errors.New("session needs a save manager")
	}
	if deps.Dispatcher == nil {
		return nil, errors.New("session needs a dispatcher")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Context == nil {
		deps.Context = NewContext("")
	}

	s := &Session{
		world: deps.World,
		saves: deps.Saves,
		disp:  deps.Dispatcher,
		log:   deps.Logger,
		ctx:   deps.Context,
	}
	s.registerHandlers()
	s.ctx.Update(s.world)
	return s, nil
}

func (s *Session) registerHandlers() {
	s.disp.Register(CommandSave, func(dispatcher.Event) (any, error) {
		if err := s.saves.Save(s.world); err != nil {
			return nil, err
		}
		return s.saves.Location(), nil
	}, dispatcher.Logged())

	s.disp.Register(CommandLoad, func(dispatcher.Event) (any, error) {
		if err := s.saves.Load(s.world); err != nil {
			return nil, err
		}
		return "ok", nil
	}, dispatcher.Logged())

	s.disp.Register(CommandStart, func(dispatcher.Event) (any, error) {
		d := s.world.Director()
		if d.Phase() == game.NotStarted {
			return "started", d.Start()
		}
		return "level", d.BeginLevel()
	})
}

func (s *Session) World() *game.World   { return s.world }
func (s *Session) Context() *Context    { return s.ctx }
func (s *Session) Saves() *save.Manager { return s.saves }
func (s *Session) Status() Status       { return s.ctx.Status() }

// Save writes the world to the save slot.
func (s *Session) Save() error { return s.command(CommandSave) }

// Load replaces the world with the save slot.
func (s *Session) Load() error { return s.command(CommandLoad) }

// Start leaves the menu, or begins the pending level.
func (s *Session) Start() error { return s.command(CommandStart) }

func (s *Session) command(name string) error {
	_, err := s.disp.Dispatch(dispatcher.Event{Command: name})
	if err != nil {
		s.ctx.SetError(err.Error())
		return err
	}
	s.ctx.SetError("")
	return nil
}

// Tick applies the session commands in the input, then advances the world.
// Command failures are logged and leave the world as it was. It reports
// whether a level was cleared during the tick.
func (s *Session) Tick(dt float64, in game.Input) bool {
	if in.Save {
		if err := s.Save(); err != nil {
			s.log.Error("save failed", "error", err)
		}
	}
	if in.Load {
		if err := s.Load(); err != nil {
			s.log.Error("load failed", "error", err)
		}
	}
	if in.Start {
		if err := s.Start(); err != nil {
			s.log.Debug("start ignored", "error", err)
		}
	}

	cleared := s.world.Tick(dt, in)
	s.ctx.Update(s.world)
	return cleared
}

// OnClose registers cleanup to run on Close, most recent first.
func (s *Session) OnClose(fn func() error) {
	s.closer = append(s.closer, fn)
}

// Close stops the dispatcher, then runs the cleanup callbacks.
func (s *Session) Close() error {
	s.disp.Close()
	var errs []error
	for i := len(s.closer) - 1; i >= 0; i-- {
		errs = append(errs, s.closer[i]())
	}
	s.closer = nil
	return errors.Join(errs...)
}
