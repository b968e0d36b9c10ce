package game

import (
	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/pkg/core"
)

// Vital is anything with a bounded health pool.
type Vital interface {
	Health() int
	MaxHealth() int
}

// IsAlive reports whether v has health left.
func IsAlive(v Vital) bool {
	return v.Health() > 0
}

// Entity is the state every combatant shares.
type Entity struct {
	w          *World
	id         uint64
	kind       core.CombatantKind
	def        level.KindDef
	position   core.Vec3
	rotation   core.Vec3
	health     int
	lastAttack float64
	handle     Handle
	enlisted   bool
	removed    bool
	bar        HealthBar
}

func newEntity(w *World, kind core.CombatantKind, def level.KindDef, pos core.Vec3) *Entity {
	w.nextID++
	return &Entity{
		w:          w,
		id:         w.nextID,
		kind:       kind,
		def:        def,
		position:   pos,
		health:     def.MaxHealth,
		lastAttack: w.clock,
	}
}

func (e *Entity) ID() uint64               { return e.id }
func (e *Entity) Kind() core.CombatantKind { return e.kind }
func (e *Entity) Position() core.Vec3      { return e.position }
func (e *Entity) Rotation() core.Vec3      { return e.rotation }
func (e *Entity) Health() int              { return e.health }
func (e *Entity) MaxHealth() int           { return e.def.MaxHealth }
func (e *Entity) HealthBar() HealthBar     { return e.bar }

// Removed reports whether the entity has left the roster for good.
func (e *Entity) Removed() bool { return e.removed }

func (e *Entity) entity() *Entity { return e }

// setHealth clamps into [0, max].
func (e *Entity) setHealth(h int) {
	e.health = min(max(h, 0), e.def.MaxHealth)
}

// UpdateHealthBar recomputes the bar and pushes it to the visual.
func (e *Entity) UpdateHealthBar() {
	e.bar = NewHealthBar(e.health, e.def.MaxHealth, e.position)
	if e.enlisted && !e.removed {
		e.w.visuals.SetHealthBar(e.handle, e.bar)
	}
}

// DecrementHealth applies damage. Negative amounts are ignored and overkill is
// absorbed. At zero health the entity leaves the roster and its visual is
// destroyed, once.
func (e *Entity) DecrementHealth(amount int) {
	if amount < 0 || e.removed {
		return
	}
	e.setHealth(e.health - amount)
	e.UpdateHealthBar()
	if e.health == 0 {
		e.w.retire(e)
	}
}

// heal raises health, clamped to max, and returns the amount actually gained.
func (e *Entity) heal(amount int) int {
	if amount <= 0 || e.removed {
		return 0
	}
	before := e.health
	e.setHealth(e.health + amount)
	return e.health - before
}

// Siphon heals c by amount, capped at its max health, and refreshes its bar.
// It returns the health actually gained.
func Siphon(c Combatant, amount int) int {
	gained := c.entity().heal(amount)
	if gained > 0 {
		c.UpdateHealthBar()
	}
	return gained
}

// strike is the proximity attack shared by every combatant family.
func (e *Entity) strike(p *Player) bool {
	if p == nil || !p.Alive() || e.removed {
		return false
	}
	now := e.w.clock
	if e.position.Dist(p.position) >= e.def.AttackRange {
		return false
	}
	if now-e.lastAttack < e.def.AttackCooldown {
		return false
	}

	damage := e.def.DamageMin
	if spread := e.def.DamageMax - e.def.DamageMin; spread > 0 {
		damage += e.w.rng.Intn(spread + 1)
	}

	p.DecrementHealth(damage)
	e.lastAttack = now
	e.w.audio.Play(CueHit)

	siphoned := 0
	if e.kind.Fancy() {
		siphoned = e.heal(damage)
		if siphoned > 0 {
			e.UpdateHealthBar()
		}
	}

	e.w.metrics.playerDamage(damage, e.kind)
	e.w.events.Publish(core.CommandPlayerHit, core.PlayerHitEvent{
		Time:           e.w.wall(),
		SimTime:        now,
		AttackerID:     e.id,
		AttackerKind:   e.kind,
		Damage:         damage,
		Siphoned:       siphoned,
		PlayerHealth:   p.health,
		PlayerPosition: p.position,
	})
	return true
}
