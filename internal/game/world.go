// Package game holds the combat simulation: the player, the combatant roster,
// projectiles, the level director and the tick that advances them.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/internal/queue"
	"github.com/skirmish-game/skirmish/pkg/core"
)

// Dependencies are the collaborators a World calls out to. Nil fields fall
// back to silent defaults.
type Dependencies struct {
	Tuning  config.Tuning
	Catalog *level.Catalog
	Visuals Visuals
	Audio   Audio
	Events  EventSink
	RNG     RNG
	Logger  *slog.Logger
	Clock   func() time.Time
}

// World owns every piece of mutable simulation state. It is not safe for
// concurrent use; Tick is the only mutator.
type World struct {
	tuning  config.Tuning
	catalog *level.Catalog
	visuals Visuals
	audio   Audio
	events  EventSink
	rng     RNG
	logger  *slog.Logger
	now     func() time.Time

	clock       float64
	nextID      uint64
	timers      *queue.Delay
	roster      *Roster
	player      *Player
	projectiles []*Projectile
	director    *Director
	metrics     *metrics
}

// NewWorld creates an empty world in the NotStarted phase.
func NewWorld(deps Dependencies) (*World, error) {
	if deps.Catalog == nil {
		deps.Catalog = level.Default()
	}
	if deps.Catalog.Len() == 0 {
		return nil, errors.New("level catalog is empty")
	}
	if deps.Tuning == (config.Tuning{}) {
		deps.Tuning = config.DefaultTuning()
	}
	if deps.Visuals == nil {
		deps.Visuals = NopVisuals{}
	}
	if deps.Audio == nil {
		deps.Audio = NopAudio{}
	}
	if deps.Events == nil {
		deps.Events = NopSink{}
	}
	if deps.RNG == nil {
		deps.RNG = NewPRNG(0)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	m, err := newMetrics()
	if err != nil {
		return nil, fmt.Errorf("init game metrics: %w", err)
	}

	w := &World{
		tuning:  deps.Tuning,
		catalog: deps.Catalog,
		visuals: deps.Visuals,
		audio:   deps.Audio,
		events:  deps.Events,
		rng:     deps.RNG,
		logger:  deps.Logger,
		now:     deps.Clock,
		timers:  queue.NewDelay(),
		roster:  &Roster{},
		metrics: m,
	}
	w.director = &Director{w: w}
	return w, nil
}

func (w *World) Clock() float64          { return w.clock }
func (w *World) Player() *Player         { return w.player }
func (w *World) Roster() *Roster         { return w.roster }
func (w *World) Director() *Director     { return w.director }
func (w *World) Catalog() *level.Catalog { return w.catalog }
func (w *World) Tuning() config.Tuning   { return w.tuning }

func (w *World) Projectiles() []*Projectile {
	out := make([]*Projectile, len(w.projectiles))
	copy(out, w.projectiles)
	return out
}

// Pending returns the number of deferred actions waiting on the clock.
func (w *World) Pending() int { return w.timers.Len() }

func (w *World) wall() time.Time { return w.now().UTC() }

// Tick advances the simulation by dt seconds. dt is clamped to
// [0, MaxDeltaTime]. It reports whether a wave was cleared during the tick.
func (w *World) Tick(dt float64, in Input) bool {
	if dt < 0 {
		dt = 0
	}
	if limit := w.tuning.MaxDeltaTime; limit > 0 && dt > limit {
		dt = limit
	}
	w.clock += dt

	w.timers.Advance(w.clock)

	p := w.player
	switch {
	case p == nil:
		if w.director.phase != NotStarted {
			w.logger.Debug("player update skipped", "error", ErrPlayerNotFound)
		}
	case p.alive:
		p.update(in, dt)
	}

	if p != nil && p.alive {
		members := w.roster.Members()
		for _, c := range members {
			w.pursue(c, p.position, members, dt)
		}
		for _, c := range members {
			if !c.Removed() {
				c.Attack(p)
			}
		}
	}

	w.advanceProjectiles(dt)
	w.metrics.setRosterSize(w.roster.Len())
	return w.director.Update()
}

// enlist spawns c's visual and adds it to the roster.
func (w *World) enlist(c Combatant) {
	e := c.entity()
	e.handle = w.visuals.SpawnCombatant(e.kind, e.position, e.rotation)
	e.enlisted = true
	w.roster.Add(c)
	c.UpdateHealthBar()
}

// retire removes a dead entity from the roster and destroys its visual once.
func (w *World) retire(e *Entity) {
	if e.removed {
		return
	}
	e.removed = true
	if !w.roster.Remove(e.id) {
		return
	}
	if e.enlisted {
		w.visuals.Destroy(e.handle)
	}
	w.metrics.combatantKilled(e.kind)
	w.events.Publish(core.CommandKill, core.KillEvent{
		Time:       w.wall(),
		SimTime:    w.clock,
		VictimID:   e.id,
		VictimKind: e.kind,
		Position:   e.position,
		LevelIndex: w.director.index,
	})
}

// Snapshot captures the persisted part of the world.
func (w *World) Snapshot() core.SaveState {
	s := core.SaveState{
		Version:           core.SaveStateVersion,
		Roster:            w.roster.Records(),
		CurrentLevelIndex: w.director.index,
		SavedAt:           w.wall(),
	}
	if p := w.player; p != nil {
		s.PlayerPosition = p.position
		s.PlayerHealth = p.health
	} else {
		s.PlayerPosition = core.V3(w.tuning.PlayerStartX, w.tuning.PlayerStartY, w.tuning.PlayerStartZ)
		s.PlayerHealth = w.tuning.PlayerMaxHealth
	}
	return s
}

// Restore replaces the world with s. Nothing changes unless the whole
// snapshot is valid.
func (w *World) Restore(s core.SaveState) error {
	if err := w.validate(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	fresh := make([]Combatant, 0, len(s.Roster))
	for _, r := range s.Roster {
		c, err := NewCombatant(w, r.Kind, r.Position)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		c.entity().health = r.Health
		fresh = append(fresh, c)
	}

	for _, c := range w.roster.Members() {
		e := c.entity()
		e.removed = true
		if e.enlisted {
			w.visuals.Destroy(e.handle)
		}
	}
	w.roster.Clear()
	for _, p := range w.projectiles {
		w.destroyProjectile(p, 0, false)
	}
	w.projectiles = nil

	if w.player == nil {
		w.player = newPlayer(w)
	}
	p := w.player
	p.position = s.PlayerPosition
	p.setHealth(s.PlayerHealth)
	p.alive = p.health > 0
	p.cancelReload()

	for _, c := range fresh {
		w.enlist(c)
	}
	w.director.restore(s.CurrentLevelIndex)
	w.metrics.setRosterSize(w.roster.Len())
	p.updateHUD()

	w.logger.Info("world restored",
		"level", s.CurrentLevelIndex+1,
		"combatants", len(fresh),
		"playerHealth", p.health)
	return nil
}

func (w *World) validate(s core.SaveState) error {
	if s.Version > core.SaveStateVersion {
		return fmt.Errorf("unsupported version %d", s.Version)
	}
	if s.CurrentLevelIndex < 0 || s.CurrentLevelIndex >= w.catalog.Len() {
		return fmt.Errorf("level index %d: %w", s.CurrentLevelIndex, level.ErrNoSuchLevel)
	}
	if s.PlayerHealth < 0 || s.PlayerHealth > w.tuning.PlayerMaxHealth {
		return fmt.Errorf("player health %d out of range", s.PlayerHealth)
	}
	for i, r := range s.Roster {
		def, ok := w.catalog.Kind(r.Kind)
		if !r.Kind.Valid() || !ok {
			return fmt.Errorf("combatant %d: unknown kind %s", i, r.Kind)
		}
		if r.Health < 1 || r.Health > def.MaxHealth {
			return fmt.Errorf("combatant %d: health %d out of range", i, r.Health)
		}
	}
	return nil
}
