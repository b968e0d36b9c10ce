package game

import (
	"testing"

	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCombatant_Families(t *testing.T) {
	h := newHarness(t, stubRNG{})

	for _, k := range core.AllKinds {
		c, err := NewCombatant(h.w, k, core.V3(1, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, k, c.Kind())
		assert.Equal(t, c.MaxHealth(), c.Health())
		if k.Ranged() {
			assert.IsType(t, &CameraOperator{}, c)
		} else {
			assert.IsType(t, &Melee{}, c)
		}
	}

	_, err := NewCombatant(h.w, core.KindUnknown, core.Vec3{})
	assert.Error(t, err)
}

func TestDecrementHealth_ClampsAndRemovesOnce(t *testing.T) {
	h := newHarness(t, stubRNG{})
	c := h.spawn(t, core.StandardMelee, core.V3(5, 0, 5))
	handle := c.entity().handle

	c.DecrementHealth(-10)
	assert.Equal(t, 100, c.Health())

	c.DecrementHealth(30)
	assert.Equal(t, 70, c.Health())
	assert.Equal(t, 0.7, h.visuals.bars[handle].Ratio)

	c.DecrementHealth(500)
	assert.Equal(t, 0, c.Health())
	assert.True(t, c.Removed())
	assert.Equal(t, 0, h.w.Roster().Len())

	c.DecrementHealth(5)
	assert.Equal(t, 0, c.Health())
	assert.Equal(t, 1, h.visuals.destroyed[handle])
	assert.Equal(t, 1, h.sink.count(core.CommandKill))

	kill := h.sink.events[core.CommandKill][0].(core.KillEvent)
	assert.Equal(t, c.ID(), kill.VictimID)
	assert.Equal(t, core.StandardMelee, kill.VictimKind)
}

func TestIsAlive(t *testing.T) {
	h := newHarness(t, stubRNG{})
	c := h.spawn(t, core.FancyMelee, core.Vec3{})

	assert.True(t, IsAlive(c))
	c.DecrementHealth(100)
	assert.False(t, IsAlive(c))
}

func TestSiphon_ClampsToMax(t *testing.T) {
	h := newHarness(t, stubRNG{})
	c := h.spawn(t, core.FancyRanged, core.Vec3{})

	c.DecrementHealth(3)
	assert.Equal(t, 3, Siphon(c, 10))
	assert.Equal(t, 100, c.Health())
	assert.Equal(t, 0, Siphon(c, 10))
	assert.Equal(t, 0, Siphon(c, -4))
}

func TestDuplicate(t *testing.T) {
	h := newHarness(t, stubRNG{})
	c := h.spawn(t, core.FancyMelee, core.V3(1, 0.5, 1))
	c.DecrementHealth(40)

	dup := c.Duplicate(core.V3(3, 0.5, 3))
	assert.Equal(t, core.FancyMelee, dup.Kind())
	assert.Equal(t, 100, dup.Health())
	assert.Equal(t, core.V3(3, 0.5, 3), dup.Position())
	assert.NotEqual(t, c.ID(), dup.ID())
	assert.False(t, h.w.Roster().Contains(dup.ID()))
}

func TestAttack_RangeAndCooldown(t *testing.T) {
	h := startedHarness(t, stubRNG{n: 1})
	p := h.w.Player()
	c := h.spawn(t, core.StandardMelee, p.Position().Add(core.V3(2.9, 0, 0)))

	// cooldown runs from spawn
	h.w.clock = 0.5
	assert.False(t, c.Attack(p))

	h.w.clock = 1.0
	require.True(t, c.Attack(p))
	assert.Equal(t, 96, p.Health())
	assert.Contains(t, h.audio.cues, CueHit)

	h.w.clock = 1.5
	assert.False(t, c.Attack(p))

	h.w.clock = 2.0
	assert.True(t, c.Attack(p))
	assert.Equal(t, 92, p.Health())

	far := h.spawn(t, core.StandardMelee, p.Position().Add(core.V3(3, 0, 0)))
	h.w.clock = 10
	assert.False(t, far.Attack(p))

	hit := h.sink.events[core.CommandPlayerHit][0].(core.PlayerHitEvent)
	assert.Equal(t, 4, hit.Damage)
	assert.Equal(t, 0, hit.Siphoned)
}

func TestAttack_DamageRollBounds(t *testing.T) {
	for _, tt := range []struct {
		roll int
		want int
	}{
		{0, 3},
		{2, 5},
		{99, 5},
	} {
		h := startedHarness(t, stubRNG{n: tt.roll})
		p := h.w.Player()
		c := h.spawn(t, core.StandardRanged, p.Position())
		h.w.clock = 1
		require.True(t, c.Attack(p))
		assert.Equal(t, 100-tt.want, p.Health())
	}
}

func TestAttack_FancySiphons(t *testing.T) {
	h := startedHarness(t, stubRNG{n: 2})
	p := h.w.Player()
	c := h.spawn(t, core.FancyMelee, p.Position())
	c.DecrementHealth(2)

	h.w.clock = 1
	require.True(t, c.Attack(p))
	assert.Equal(t, 95, p.Health())
	assert.Equal(t, 100, c.Health())

	hit := h.sink.events[core.CommandPlayerHit][0].(core.PlayerHitEvent)
	assert.Equal(t, 2, hit.Siphoned)
}

func TestAttack_DeadOrMissingPlayer(t *testing.T) {
	h := startedHarness(t, stubRNG{})
	p := h.w.Player()
	c := h.spawn(t, core.StandardMelee, p.Position())
	h.w.clock = 5

	assert.False(t, c.Attack(nil))
	p.DecrementHealth(1000)
	assert.False(t, c.Attack(p))
	assert.Equal(t, 0, h.sink.count(core.CommandPlayerHit))
}

func TestHealthBar_Tones(t *testing.T) {
	tests := []struct {
		health int
		tone   Tone
	}{
		{100, ToneGreen},
		{51, ToneGreen},
		{50, ToneYellow},
		{21, ToneYellow},
		{20, ToneRed},
		{0, ToneRed},
	}
	for _, tt := range tests {
		bar := NewHealthBar(tt.health, 100, core.V3(1, 1, 1))
		assert.Equal(t, tt.tone, bar.Tone, "health %d", tt.health)
		assert.InDelta(t, float64(tt.health)/100*3, bar.Width, 1e-9)
		assert.Equal(t, core.V3(1, 4, 1), bar.Anchor)
	}
}

func TestAmmoCounter(t *testing.T) {
	assert.Equal(t, AmmoCounter{Label: "MP5K: 60/60", Tone: ToneWhite}, NewAmmoCounter("MP5K", 60, 60))
	assert.Equal(t, ToneWhite, NewAmmoCounter("MP5K", 21, 60).Tone)
	assert.Equal(t, ToneYellow, NewAmmoCounter("MP5K", 20, 60).Tone)
	assert.Equal(t, ToneYellow, NewAmmoCounter("MP5K", 1, 60).Tone)
	assert.Equal(t, ToneRed, NewAmmoCounter("MP5K", 0, 60).Tone)
}
