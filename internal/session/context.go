package session

import (
	"sync"

	"github.com/skirmish-game/skirmish/internal/game"
)

// Status is a copy of the run state that other goroutines may read.
type Status struct {
	RunID       string
	LevelIndex  int
	LevelName   string
	Phase       game.Phase
	Health      int
	MaxHealth   int
	Ammo        game.AmmoCounter
	Reloading   bool
	Roster      int
	Projectiles int
	LastError   string
}

// Context holds the latest Status. The simulation goroutine writes it after
// every tick; log handlers and the status line read it.
type Context struct {
	mu     sync.RWMutex
	status Status
}

// NewContext creates a new Context for the run.
func NewContext(runID string) *Context {
	return &Context{status: Status{RunID: runID, Phase: game.NotStarted}}
}

// Status returns the current status.
func (c *Context) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// LevelIndex returns the current level index.
func (c *Context) LevelIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status.LevelIndex
}

// SetError records the last failure shown to the user; empty clears it.
func (c *Context) SetError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.LastError = msg
}

// Update copies the observable state of w.
func (c *Context) Update(w *game.World) {
	d := w.Director()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.LevelIndex = d.LevelIndex()
	c.status.LevelName = d.LevelName()
	c.status.Phase = d.Phase()
	c.status.Roster = w.Roster().Len()
	c.status.Projectiles = len(w.Projectiles())
	if p := w.Player(); p != nil {
		hud := p.HUD()
		c.status.Health = p.Health()
		c.status.MaxHealth = p.MaxHealth()
		c.status.Ammo = hud.Ammo
		c.status.Reloading = hud.Reloading
	}
}
