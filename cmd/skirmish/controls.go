package main

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/skirmish-game/skirmish/internal/game"
	"github.com/skirmish-game/skirmish/pkg/core"
)

const (
	// terminals report presses, not releases; a move key counts as held
	// until its auto-repeat stops arriving
	holdFor   = 150 * time.Millisecond
	yawStep   = 15.0
	pitchStep = 5.0
	maxPitch  = 45.0
)

var moveKeys = map[rune]core.Vec3{
	'w': core.V3(0, 0, 1),
	's': core.V3(0, 0, -1),
	'a': core.V3(-1, 0, 0),
	'd': core.V3(1, 0, 0),
}

// controls turns key presses into per-tick game.Input snapshots.
type controls struct {
	move    core.Vec3
	movedAt time.Time
	sprint  bool

	yaw, pitch float64

	fire, reload, save, load, start bool
}

// key applies one key press. It reports whether the user asked to quit.
func (c *controls) key(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		c.start = true
	case tcell.KeyLeft:
		c.yaw -= yawStep
	case tcell.KeyRight:
		c.yaw += yawStep
	case tcell.KeyUp:
		c.pitch = min(c.pitch+pitchStep, maxPitch)
	case tcell.KeyDown:
		c.pitch = max(c.pitch-pitchStep, -maxPitch)
	case tcell.KeyRune:
		return c.rune(ev.Rune(), now)
	}
	return false
}

func (c *controls) rune(r rune, now time.Time) bool {
	lower := r
	if r >= 'A' && r <= 'Z' {
		lower = r + ('a' - 'A')
	}
	if dir, ok := moveKeys[lower]; ok {
		if now.Sub(c.movedAt) > holdFor {
			c.move = core.Vec3{}
		}
		c.move = c.move.Add(dir)
		c.movedAt = now
		c.sprint = r != lower
		return false
	}

	switch lower {
	case 'q':
		return true
	case ' ':
		c.fire = true
	case 'r':
		c.reload = true
	case 'p':
		c.save = true
	case 'l':
		c.load = true
	}
	return false
}

func (c *controls) aim() core.Vec3 {
	yaw := c.yaw * math.Pi / 180
	pitch := c.pitch * math.Pi / 180
	return core.V3(math.Sin(yaw)*math.Cos(pitch), math.Sin(pitch), math.Cos(yaw)*math.Cos(pitch))
}

// input returns the snapshot for this tick and clears the one-shot actions.
func (c *controls) input(now time.Time) game.Input {
	in := game.Input{
		Aim:    c.aim(),
		Fire:   c.fire,
		Reload: c.reload,
		Save:   c.save,
		Load:   c.load,
		Start:  c.start,
	}
	if now.Sub(c.movedAt) <= holdFor {
		in.Move = c.move
		in.Sprint = c.sprint
	}
	c.fire, c.reload, c.save, c.load, c.start = false, false, false, false, false
	return in
}
