package game

import (
	"fmt"
	"math"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// PlayerPhase is what the weapon is doing.
type PlayerPhase int

const (
	PhaseIdle PlayerPhase = iota
	PhaseShooting
	PhaseReloading
)

func (p PlayerPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShooting:
		return "shooting"
	case PhaseReloading:
		return "reloading"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Player is the singleton the combatants hunt.
type Player struct {
	w         *World
	position  core.Vec3
	aim       core.Vec3
	health    int
	maxHealth int
	ammo      int
	capacity  int
	reloading bool
	reloadGen uint64
	lastShoot float64
	spawnedAt float64
	sprint    bool
	alive     bool
	firing    bool
}

func newPlayer(w *World) *Player {
	t := w.tuning
	return &Player{
		w:         w,
		position:  core.V3(t.PlayerStartX, t.PlayerStartY, t.PlayerStartZ),
		aim:       core.V3(0, 0, 1),
		health:    t.PlayerMaxHealth,
		maxHealth: t.PlayerMaxHealth,
		ammo:      t.MagazineCapacity,
		capacity:  t.MagazineCapacity,
		lastShoot: math.Inf(-1),
		spawnedAt: w.clock,
		alive:     true,
	}
}

func (p *Player) Position() core.Vec3 { return p.position }
func (p *Player) Aim() core.Vec3      { return p.aim }
func (p *Player) Health() int         { return p.health }
func (p *Player) MaxHealth() int      { return p.maxHealth }
func (p *Player) Ammo() int           { return p.ammo }
func (p *Player) Capacity() int       { return p.capacity }
func (p *Player) Reloading() bool     { return p.reloading }
func (p *Player) Alive() bool         { return p.alive }

// Phase reports the weapon state. Shooting holds for one cooldown after a shot.
func (p *Player) Phase() PlayerPhase {
	switch {
	case p.reloading:
		return PhaseReloading
	case p.w.clock-p.lastShoot < p.w.tuning.ShootCooldown:
		return PhaseShooting
	}
	return PhaseIdle
}

// SetAim points the weapon. A zero vector keeps the current aim.
func (p *Player) SetAim(dir core.Vec3) {
	if n := dir.Normalize(); !n.IsZero() {
		p.aim = n
	}
}

// Move walks along dir on the ground plane.
func (p *Player) Move(dir core.Vec3, sprint bool, dt float64) {
	p.sprint = sprint
	if !p.alive {
		return
	}
	flat := dir.Flat().Normalize()
	if flat.IsZero() {
		return
	}
	speed := p.w.tuning.PlayerSpeed
	if sprint {
		speed = p.w.tuning.SprintSpeed
	}
	p.position = p.position.Add(flat.Scale(speed * dt))
}

// Shoot fires one round along the aim. Refusals return a sentinel error
// describing why the weapon did not fire.
func (p *Player) Shoot() (*Projectile, error) {
	w := p.w
	now := w.clock
	switch {
	case !p.alive:
		return nil, ErrPlayerDead
	case now < p.spawnedAt+w.tuning.GracePeriod:
		return nil, ErrGracePeriod
	case p.reloading:
		return nil, ErrReloading
	case p.ammo <= 0:
		return nil, ErrAmmoDepleted
	case now-p.lastShoot < w.tuning.ShootCooldown:
		return nil, ErrCooldown
	}

	muzzle := p.position.Add(core.V3(0, w.tuning.EyeHeight, 0)).Add(p.aim.Scale(w.tuning.MuzzleOffset))
	proj := w.spawnProjectile(muzzle, p.aim)

	p.lastShoot = now
	p.ammo--
	w.audio.Play(CueShoot)
	w.metrics.shotFired()
	w.events.Publish(core.CommandFired, core.FiredEvent{
		Time:         w.wall(),
		SimTime:      now,
		ProjectileID: proj.id,
		Origin:       muzzle,
		Direction:    p.aim,
		AmmoLeft:     p.ammo,
	})
	p.updateHUD()
	return proj, nil
}

// Reload starts a magazine swap. It reports false when the magazine is full or
// a reload is already running.
func (p *Player) Reload() bool {
	if !p.alive || p.reloading || p.ammo == p.capacity {
		return false
	}
	w := p.w
	p.reloading = true
	w.audio.Play(CueReload)
	gen := p.reloadGen
	pending := func() bool { return p.alive && p.reloadGen == gen }
	w.timers.After(w.clock, w.tuning.ReloadDuration, pending, func(float64) {
		p.ammo = p.capacity
		p.reloading = false
		p.updateHUD()
	})
	p.updateHUD()
	return true
}

// DecrementHealth applies damage, clamping at zero. Zero health is terminal.
func (p *Player) DecrementHealth(amount int) {
	if amount < 0 || !p.alive {
		return
	}
	p.setHealth(p.health - amount)
	if p.health == 0 {
		p.alive = false
		p.cancelReload()
		p.w.logger.Info("player defeated", "position", p.position)
	}
	p.updateHUD()
}

// cancelReload drops any magazine swap still waiting on the delay queue.
func (p *Player) cancelReload() {
	p.reloading = false
	p.reloadGen++
}

func (p *Player) setHealth(h int) {
	p.health = min(max(h, 0), p.maxHealth)
}

// HUD returns the overlay state for the current values.
func (p *Player) HUD() HUD {
	return HUD{
		Health:    NewHealthBar(p.health, p.maxHealth, p.position),
		Ammo:      NewAmmoCounter(p.w.tuning.WeaponName, p.ammo, p.capacity),
		Reloading: p.reloading,
		Phase:     p.Phase(),
	}
}

func (p *Player) updateHUD() {
	p.w.visuals.UpdateHUD(p.HUD())
}

// update runs the player's share of a tick: move, reload, fire.
func (p *Player) update(in Input, dt float64) {
	p.SetAim(in.Aim)
	p.Move(in.Move, in.Sprint, dt)
	if in.Reload {
		p.Reload()
	}
	if in.Fire {
		if _, err := p.Shoot(); err != nil {
			p.w.logger.Debug("shot refused", "reason", err)
		}
	}
}
