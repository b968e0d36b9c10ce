package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/skirmish-game/skirmish/internal/game"
	"github.com/skirmish-game/skirmish/internal/session"
	"github.com/skirmish-game/skirmish/pkg/core"
)

const (
	// world units per terminal row; a column is half as wide
	cellSize = 1.0
	helpLine = "WASD move (caps sprint)  arrows aim  space fire  r reload  p save  l load  enter start  q quit"
)

var glyphs = map[core.CombatantKind]rune{
	core.StandardMelee:  'm',
	core.FancyMelee:     'M',
	core.StandardRanged: 'r',
	core.FancyRanged:    'R',
}

type sprite struct {
	glyph rune
	pos   core.Vec3
	tone  game.Tone
}

// view is a top-down tcell rendering of the world, centred on the player.
type view struct {
	screen  tcell.Screen
	next    game.Handle
	sprites map[game.Handle]*sprite
	hud     game.HUD
}

var _ game.Visuals = (*view)(nil)

func newView(screen tcell.Screen) *view {
	return &view{
		screen:  screen,
		sprites: make(map[game.Handle]*sprite),
	}
}

func (v *view) add(s *sprite) game.Handle {
	v.next++
	v.sprites[v.next] = s
	return v.next
}

func (v *view) SpawnCombatant(kind core.CombatantKind, pos, _ core.Vec3) game.Handle {
	return v.add(&sprite{glyph: glyphs[kind], pos: pos, tone: game.ToneGreen})
}

func (v *view) SpawnProjectile(pos core.Vec3) game.Handle {
	return v.add(&sprite{glyph: '*', pos: pos, tone: game.ToneWhite})
}

func (v *view) Move(h game.Handle, pos, _ core.Vec3) {
	if s, ok := v.sprites[h]; ok {
		s.pos = pos
	}
}

func (v *view) SetHealthBar(h game.Handle, bar game.HealthBar) {
	if s, ok := v.sprites[h]; ok {
		s.tone = bar.Tone
	}
}

func (v *view) UpdateHUD(hud game.HUD) { v.hud = hud }

func (v *view) Destroy(h game.Handle) { delete(v.sprites, h) }

func toneColor(t game.Tone) tcell.Color {
	switch t {
	case game.ToneGreen:
		return tcell.ColorGreen
	case game.ToneYellow:
		return tcell.ColorYellow
	case game.ToneRed:
		return tcell.ColorRed
	}
	return tcell.ColorWhite
}

func (v *view) drawText(x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// cell maps a world position to a screen cell around centre.
func cell(pos, centre core.Vec3, w, h int) (int, int, bool) {
	col := w/2 + int(math.Round((pos.X-centre.X)/cellSize*2))
	row := (h-1)/2 - int(math.Round((pos.Z-centre.Z)/cellSize))
	return col, row, col >= 0 && col < w && row >= 1 && row < h-1
}

func (v *view) draw(w *game.World, st session.Status) {
	v.screen.Clear()
	width, height := v.screen.Size()
	plain := tcell.StyleDefault

	v.drawText(0, 0, plain.Foreground(tcell.ColorGray), helpLine)

	var centre core.Vec3
	if p := w.Player(); p != nil {
		centre = p.Position()
		if x, y, ok := cell(centre.Add(p.Aim().Flat().Normalize().Scale(3)), centre, width, height); ok {
			v.screen.SetContent(x, y, '+', nil, plain.Foreground(tcell.ColorGray))
		}
	}

	for _, s := range v.sprites {
		if x, y, ok := cell(s.pos, centre, width, height); ok {
			v.screen.SetContent(x, y, s.glyph, nil, plain.Foreground(toneColor(s.tone)))
		}
	}

	if p := w.Player(); p != nil {
		x, y, _ := cell(centre, centre, width, height)
		style := plain.Foreground(toneColor(v.hud.Health.Tone)).Bold(true)
		if !p.Alive() {
			style = plain.Foreground(tcell.ColorRed)
		}
		v.screen.SetContent(x, y, '@', nil, style)
	}

	v.drawStatus(height-1, st)
	v.screen.Show()
}

func (v *view) drawStatus(y int, st session.Status) {
	plain := tcell.StyleDefault
	x := v.drawText(0, y, plain.Bold(true), fmt.Sprintf("L%d %s ", st.LevelIndex+1, st.LevelName))
	x = v.drawText(x, y, plain, fmt.Sprintf("| %s | ", st.Phase))
	x = v.drawText(x, y, plain.Foreground(toneColor(v.hud.Health.Tone)), fmt.Sprintf("HP %d/%d", st.Health, st.MaxHealth))
	x = v.drawText(x, y, plain, " | ")
	x = v.drawText(x, y, plain.Foreground(toneColor(st.Ammo.Tone)), st.Ammo.Label)
	if st.Reloading {
		x = v.drawText(x, y, plain.Foreground(tcell.ColorYellow), " reloading")
	}
	x = v.drawText(x, y, plain, fmt.Sprintf(" | enemies %d", st.Roster))
	if st.LastError != "" {
		v.drawText(x, y, plain.Foreground(tcell.ColorRed), " | "+st.LastError)
	}
}
