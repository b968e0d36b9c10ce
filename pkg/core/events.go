// pkg/core/events.go
package core

import (
	"time"
)

// Commands under which the simulation publishes its domain events.
const (
	CommandFired     = ":FIRED:"
	CommandHit       = ":HIT:"
	CommandKill      = ":KILL:"
	CommandPlayerHit = ":PLAYER:HIT:"
	CommandWave      = ":WAVE:"
	CommandPath      = ":PROJECTILE:"
)

// FiredEvent represents the player firing a projectile.
type FiredEvent struct {
	Time         time.Time
	SimTime      float64
	ProjectileID uint64
	Origin       Vec3
	Direction    Vec3
	AmmoLeft     int
}

// HitEvent represents a projectile striking a combatant.
type HitEvent struct {
	Time         time.Time
	SimTime      float64
	ProjectileID uint64
	VictimID     uint64
	VictimKind   CombatantKind
	Position     Vec3
	Damage       int
	HealthLeft   int
}

// KillEvent represents a combatant reaching zero health and leaving the roster.
type KillEvent struct {
	Time       time.Time
	SimTime    float64
	VictimID   uint64
	VictimKind CombatantKind
	Position   Vec3
	LevelIndex int
}

// PlayerHitEvent represents a combatant attack landing on the player.
type PlayerHitEvent struct {
	Time           time.Time
	SimTime        float64
	AttackerID     uint64
	AttackerKind   CombatantKind
	Damage         int
	Siphoned       int
	PlayerHealth   int
	PlayerPosition Vec3
}

// WaveState is the director transition a WaveEvent reports.
type WaveState string

const (
	WaveStarted   WaveState = "started"
	WaveCleared   WaveState = "cleared"
	WaveCompleted WaveState = "all_complete"
	WaveDefeated  WaveState = "defeated"
)

// WaveEvent marks a level starting, being cleared, or ending the run.
type WaveEvent struct {
	Time       time.Time
	SimTime    float64
	LevelIndex int
	State      WaveState
	Spawned    int
	Roster     []CombatantRecord
}

// ProjectilePath is the travelled path of a projectile, published when it is destroyed.
type ProjectilePath struct {
	Time         time.Time
	ProjectileID uint64
	Points       []Vec3
	HitVictimID  uint64
	Expired      bool
}
