package game

import (
	"math"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// Projectile is a bullet in flight.
type Projectile struct {
	id        uint64
	handle    Handle
	position  core.Vec3
	direction core.Vec3
	speed     float64
	damage    int
	spawnTime float64
	alive     bool
	path      []core.Vec3
}

func (p *Projectile) ID() uint64          { return p.id }
func (p *Projectile) Position() core.Vec3 { return p.position }
func (p *Projectile) Alive() bool         { return p.alive }

func (w *World) spawnProjectile(origin, dir core.Vec3) *Projectile {
	w.nextID++
	p := &Projectile{
		id:        w.nextID,
		handle:    w.visuals.SpawnProjectile(origin),
		position:  origin,
		direction: dir.Normalize(),
		speed:     w.tuning.ProjectileSpeed,
		damage:    w.tuning.ProjectileDamage,
		spawnTime: w.clock,
		alive:     true,
		path:      []core.Vec3{origin},
	}
	w.projectiles = append(w.projectiles, p)
	w.timers.After(w.clock, w.tuning.ProjectileLifetime, p.Alive, func(float64) {
		w.destroyProjectile(p, 0, true)
	})
	return p
}

// advanceProjectiles sweeps every live projectile by one tick and resolves hits.
func (w *World) advanceProjectiles(dt float64) {
	for _, p := range w.projectiles {
		if !p.alive {
			continue
		}
		end := p.position.Add(p.direction.Scale(p.speed * dt))
		if c, at := w.firstHit(p.position, end); c != nil {
			p.position = at
			p.path = append(p.path, at)
			w.resolveHit(p, c)
			continue
		}
		p.position = end
		p.path = append(p.path, end)
		w.visuals.Move(p.handle, p.position, core.Vec3{})
	}
	w.compactProjectiles()
}

// firstHit returns the roster member whose hit sphere the segment from->to
// enters first, and the entry point. Hit spheres sit BodyHeight above the
// combatant's feet.
func (w *World) firstHit(from, to core.Vec3) (Combatant, core.Vec3) {
	seg := to.Sub(from)
	length := seg.Len()
	if length == 0 {
		return nil, core.Vec3{}
	}
	dir := seg.Scale(1 / length)
	r := w.tuning.HitRadius
	lift := core.V3(0, w.tuning.BodyHeight, 0)

	var (
		best  Combatant
		bestT = math.Inf(1)
	)
	for _, c := range w.roster.Members() {
		t, ok := sphereEntry(from, dir, length, c.Position().Add(lift), r)
		if ok && t < bestT {
			best, bestT = c, t
		}
	}
	if best == nil {
		return nil, core.Vec3{}
	}
	return best, from.Add(dir.Scale(bestT))
}

// sphereEntry intersects the ray origin+dir*t, t in [0, length], with a sphere.
func sphereEntry(origin, dir core.Vec3, length float64, center core.Vec3, r float64) (float64, bool) {
	oc := origin.Sub(center)
	if oc.Len() <= r {
		return 0, true
	}
	b := oc.Dot(dir)
	c := oc.Dot(oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 || t > length {
		return 0, false
	}
	return t, true
}

func (w *World) resolveHit(p *Projectile, c Combatant) {
	c.DecrementHealth(p.damage)
	w.metrics.projectileHit(c.Kind())
	w.events.Publish(core.CommandHit, core.HitEvent{
		Time:         w.wall(),
		SimTime:      w.clock,
		ProjectileID: p.id,
		VictimID:     c.ID(),
		VictimKind:   c.Kind(),
		Position:     p.position,
		Damage:       p.damage,
		HealthLeft:   c.Health(),
	})
	w.destroyProjectile(p, c.ID(), false)
}

func (w *World) destroyProjectile(p *Projectile, victim uint64, expired bool) {
	if !p.alive {
		return
	}
	p.alive = false
	w.visuals.Destroy(p.handle)
	w.events.Publish(core.CommandPath, core.ProjectilePath{
		Time:         w.wall(),
		ProjectileID: p.id,
		Points:       p.path,
		HitVictimID:  victim,
		Expired:      expired,
	})
}

func (w *World) compactProjectiles() {
	live := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.alive {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = live
}
