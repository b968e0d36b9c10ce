package game

import (
	"math"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// pursue moves c toward target, turns it to face the target and pushes it
// away from crowding neighbours, in that order.
func (w *World) pursue(c Combatant, target core.Vec3, others []Combatant, dt float64) {
	e := c.entity()
	speed := e.def.Speed
	minDist := w.tuning.MinDistance

	toTarget := target.Sub(e.position).Flat()
	if dist := toTarget.Len(); dist > minDist {
		step := math.Min(speed*dt, dist-minDist)
		e.position = e.position.Add(toTarget.Normalize().Scale(step))
	}

	if !toTarget.IsZero() {
		targetYaw := math.Atan2(toTarget.X, toTarget.Z) * 180 / math.Pi
		e.rotation = core.V3(0, lerpAngle(e.rotation.Y, targetYaw, math.Min(dt*w.tuning.TurnRate, 1)), 0)
	} else {
		e.rotation = core.V3(0, e.rotation.Y, 0)
	}

	for _, o := range others {
		if o.ID() == e.id || o.Removed() {
			continue
		}
		away := e.position.Sub(o.Position())
		if away.Len() >= w.tuning.MinEnemyDistance {
			continue
		}
		if away.IsZero() {
			// Coincident: the lower id steps left, the higher right.
			away = core.V3(1, 0, 0)
			if e.id < o.ID() {
				away = core.V3(-1, 0, 0)
			}
		}
		e.position = e.position.Add(away.Normalize().Scale(speed * dt))
	}

	w.visuals.Move(e.handle, e.position, e.rotation)
	e.bar.Anchor = e.position.Add(core.V3(0, healthBarLift, 0))
}

// lerpAngle interpolates from a toward b in degrees along the shorter arc.
func lerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a, 360)
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	return normalizeAngle(a + diff*t)
}

// normalizeAngle maps degrees into (-180, 180].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
