package game

import (
	"fmt"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// Phase is the director's position in the run.
type Phase int

const (
	NotStarted Phase = iota
	AwaitingStart
	InProgress
	Cleared
	AllLevelsComplete
	PlayerDefeated
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case AwaitingStart:
		return "awaiting_start"
	case InProgress:
		return "in_progress"
	case Cleared:
		return "cleared"
	case AllLevelsComplete:
		return "all_levels_complete"
	case PlayerDefeated:
		return "player_defeated"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Director sequences levels and watches for wave clears.
type Director struct {
	w              *World
	phase          Phase
	index          int
	autoStartDelay float64
}

func (d *Director) Phase() Phase    { return d.phase }
func (d *Director) LevelIndex() int { return d.index }

// LevelName returns the display name of the current level.
func (d *Director) LevelName() string {
	lvl, err := d.w.catalog.Level(d.index)
	if err != nil || lvl.Name == "" {
		return fmt.Sprintf("Level %d", d.index+1)
	}
	return lvl.Name
}

// SetAutoStart makes the director begin each level delay seconds after it
// becomes available. Zero or less disables it.
func (d *Director) SetAutoStart(delay float64) {
	d.autoStartDelay = delay
}

// Start leaves the menu: the player spawns and level 0 awaits its start.
func (d *Director) Start() error {
	if d.phase != NotStarted {
		return fmt.Errorf("start from %s: %w", d.phase, ErrWrongPhase)
	}
	d.w.player = newPlayer(d.w)
	d.w.player.updateHUD()
	d.index = 0
	d.phase = AwaitingStart
	d.scheduleAutoStart()
	return nil
}

// BeginLevel spawns the current level and starts the wave.
func (d *Director) BeginLevel() error {
	if d.phase != AwaitingStart {
		return fmt.Errorf("begin level from %s: %w", d.phase, ErrWrongPhase)
	}
	spawned, err := d.Load(d.index)
	if err != nil {
		return err
	}
	d.phase = InProgress
	d.publishWave(core.WaveStarted, spawned)
	d.w.logger.Info("level started", "level", d.index+1, "spawned", spawned)
	return nil
}

// Load populates the roster from the level manifest and rolls a duplicate for
// every spawned entry. It returns the number of combatants added.
func (d *Director) Load(index int) (int, error) {
	w := d.w
	lvl, err := w.catalog.Level(index)
	if err != nil {
		return 0, err
	}
	spawns, err := w.catalog.Manifest(index)
	if err != nil {
		return 0, err
	}
	offset := w.catalog.DuplicateOffset()

	count := 0
	for _, s := range spawns {
		c, err := NewCombatant(w, s.Kind, s.Position)
		if err != nil {
			return count, fmt.Errorf("level %d: %w", index, err)
		}
		w.enlist(c)
		count++
		if w.rng.Float64() < lvl.DuplicateChance {
			w.enlist(c.Duplicate(s.Position.Add(offset)))
			count++
		}
	}
	return count, nil
}

// AllCleared reports whether no combatant is left.
func (d *Director) AllCleared() bool {
	return d.w.roster.Len() == 0
}

// Update advances the phase machine. It reports whether a wave was cleared
// on this call.
func (d *Director) Update() bool {
	if d.phase == PlayerDefeated || d.phase == AllLevelsComplete {
		return false
	}
	if p := d.w.player; p != nil && !p.Alive() {
		d.phase = PlayerDefeated
		d.publishWave(core.WaveDefeated, 0)
		d.w.logger.Info("run lost", "level", d.index+1)
		return false
	}
	if d.phase != InProgress || !d.AllCleared() {
		return false
	}

	d.phase = Cleared
	d.publishWave(core.WaveCleared, 0)
	d.w.logger.Info("level cleared", "level", d.index+1)

	if d.index+1 < d.w.catalog.Len() {
		d.index++
		d.phase = AwaitingStart
		d.scheduleAutoStart()
	} else {
		d.phase = AllLevelsComplete
		d.publishWave(core.WaveCompleted, 0)
		d.w.logger.Info("all levels complete")
	}
	return true
}

// restore jumps to index. A restored roster means the wave is running; an
// empty one means the level has not been started yet.
func (d *Director) restore(index int) {
	d.index = index
	if d.AllCleared() {
		d.phase = AwaitingStart
		d.scheduleAutoStart()
		return
	}
	d.phase = InProgress
}

func (d *Director) scheduleAutoStart() {
	if d.autoStartDelay <= 0 {
		return
	}
	index := d.index
	w := d.w
	w.timers.After(w.clock, d.autoStartDelay,
		func() bool { return d.phase == AwaitingStart && d.index == index },
		func(float64) {
			if err := d.BeginLevel(); err != nil {
				w.logger.Warn("auto start failed", "level", index+1, "error", err)
			}
		})
}

func (d *Director) publishWave(state core.WaveState, spawned int) {
	w := d.w
	w.events.Publish(core.CommandWave, core.WaveEvent{
		Time:       w.wall(),
		SimTime:    w.clock,
		LevelIndex: d.index,
		State:      state,
		Spawned:    spawned,
		Roster:     w.roster.Records(),
	})
}
