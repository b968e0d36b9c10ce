package game

import (
	"math/rand"
	"time"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// Handle is an opaque reference to a visual owned by the Visuals collaborator.
type Handle uint64

// Audio cue names.
const (
	CueShoot  = "shoot"
	CueHit    = "hit"
	CueReload = "reload"
)

// Visuals is the rendering side of the world. The simulation never reads back from it.
type Visuals interface {
	SpawnCombatant(kind core.CombatantKind, pos, rot core.Vec3) Handle
	SpawnProjectile(pos core.Vec3) Handle
	Move(h Handle, pos, rot core.Vec3)
	SetHealthBar(h Handle, bar HealthBar)
	UpdateHUD(hud HUD)
	Destroy(h Handle)
}

// Audio plays fire-and-forget cues.
type Audio interface {
	Play(cue string)
}

// EventSink receives domain events from pkg/core, keyed by their command.
type EventSink interface {
	Publish(command string, payload any)
}

// RNG is the randomness the simulation consumes.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// Input is the per-tick snapshot of the controls surface.
type Input struct {
	Move   core.Vec3 // desired direction on the ground plane, any length
	Aim    core.Vec3 // look direction; zero keeps the previous aim
	Sprint bool
	Fire   bool
	Reload bool
	Save   bool
	Load   bool
	Start  bool
}

// NopVisuals discards everything.
type NopVisuals struct{}

func (NopVisuals) SpawnCombatant(core.CombatantKind, core.Vec3, core.Vec3) Handle { return 0 }
func (NopVisuals) SpawnProjectile(core.Vec3) Handle                                { return 0 }
func (NopVisuals) Move(Handle, core.Vec3, core.Vec3)                               {}
func (NopVisuals) SetHealthBar(Handle, HealthBar)                                  {}
func (NopVisuals) UpdateHUD(HUD)                                                   {}
func (NopVisuals) Destroy(Handle)                                                  {}

// NopAudio is silent.
type NopAudio struct{}

func (NopAudio) Play(string) {}

// NopSink drops events.
type NopSink struct{}

func (NopSink) Publish(string, any) {}

// PRNG is a seedable source so runs can be replayed.
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG creates a generator; a zero seed uses the current time.
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns an integer in [0, n).
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

var (
	_ Visuals   = NopVisuals{}
	_ Audio     = NopAudio{}
	_ EventSink = NopSink{}
	_ RNG       = (*PRNG)(nil)
)
