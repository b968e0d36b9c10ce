package game

import (
	"fmt"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// Combatant is a hostile unit in the roster.
type Combatant interface {
	Vital
	ID() uint64
	Kind() core.CombatantKind
	Position() core.Vec3
	Rotation() core.Vec3
	HealthBar() HealthBar
	Removed() bool

	// Attack strikes the player when in range and off cooldown.
	Attack(p *Player) bool
	UpdateHealthBar()
	DecrementHealth(amount int)
	// Duplicate returns a fresh, full-health combatant of the same kind at pos.
	// The copy is not enlisted.
	Duplicate(pos core.Vec3) Combatant

	entity() *Entity
}

// Melee closes in and strikes at arm's length.
type Melee struct {
	*Entity
}

func (m *Melee) Attack(p *Player) bool {
	return m.strike(p)
}

func (m *Melee) Duplicate(pos core.Vec3) Combatant {
	return &Melee{Entity: newEntity(m.w, m.kind, m.def, pos)}
}

// CameraOperator follows the player around filming. Its attack is the same
// proximity strike as Melee.
type CameraOperator struct {
	*Entity
}

func (c *CameraOperator) Attack(p *Player) bool {
	return c.strike(p)
}

func (c *CameraOperator) Duplicate(pos core.Vec3) Combatant {
	return &CameraOperator{Entity: newEntity(c.w, c.kind, c.def, pos)}
}

// NewCombatant builds a full-health combatant of kind at pos. It is not
// enlisted in the roster.
func NewCombatant(w *World, kind core.CombatantKind, pos core.Vec3) (Combatant, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown combatant kind %d", kind)
	}
	def, ok := w.catalog.Kind(kind)
	if !ok {
		return nil, fmt.Errorf("no definition for kind %s", kind)
	}
	e := newEntity(w, kind, def, pos)
	if kind.Ranged() {
		return &CameraOperator{Entity: e}, nil
	}
	return &Melee{Entity: e}, nil
}

var (
	_ Combatant = (*Melee)(nil)
	_ Combatant = (*CameraOperator)(nil)
)
