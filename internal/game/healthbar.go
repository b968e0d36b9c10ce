package game

import (
	"fmt"

	"github.com/skirmish-game/skirmish/pkg/core"
)

const (
	healthBarWidth = 3.0
	healthBarLift  = 3.0
)

// Tone is the color class of a bar or counter.
type Tone int

const (
	ToneGreen Tone = iota
	ToneYellow
	ToneRed
	ToneWhite
)

func (t Tone) String() string {
	switch t {
	case ToneGreen:
		return "green"
	case ToneYellow:
		return "yellow"
	case ToneRed:
		return "red"
	case ToneWhite:
		return "white"
	}
	return fmt.Sprintf("tone(%d)", int(t))
}

// HealthBar is the derived presentation of a health value.
type HealthBar struct {
	Ratio  float64
	Width  float64
	Tone   Tone
	Anchor core.Vec3
}

// NewHealthBar derives the bar for health out of max, floating above pos.
func NewHealthBar(health, max int, pos core.Vec3) HealthBar {
	ratio := 0.0
	if max > 0 {
		ratio = float64(health) / float64(max)
	}
	tone := ToneRed
	switch {
	case ratio > 0.5:
		tone = ToneGreen
	case ratio > 0.2:
		tone = ToneYellow
	}
	return HealthBar{
		Ratio:  ratio,
		Width:  ratio * healthBarWidth,
		Tone:   tone,
		Anchor: pos.Add(core.V3(0, healthBarLift, 0)),
	}
}

// AmmoCounter is the weapon label shown on the HUD.
type AmmoCounter struct {
	Label string
	Tone  Tone
}

// NewAmmoCounter formats "<weapon>: ammo/capacity".
func NewAmmoCounter(weapon string, ammo, capacity int) AmmoCounter {
	tone := ToneWhite
	switch {
	case ammo == 0:
		tone = ToneRed
	case ammo <= 20:
		tone = ToneYellow
	}
	return AmmoCounter{Label: fmt.Sprintf("%s: %d/%d", weapon, ammo, capacity), Tone: tone}
}

// HUD is the player's overlay state.
type HUD struct {
	Health    HealthBar
	Ammo      AmmoCounter
	Reloading bool
	Phase     PlayerPhase
}
