package game

import (
	"testing"

	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectile_HitsClosestCombatant(t *testing.T) {
	h := startedHarness(t, stubRNG{})
	near := h.spawn(t, core.StandardMelee, core.V3(0, 0.5, 5))
	far := h.spawn(t, core.StandardMelee, core.V3(0, 0.5, 8))

	h.w.clock = 1
	proj, err := h.w.Player().Shoot()
	require.NoError(t, err)

	h.w.advanceProjectiles(0.05)

	assert.False(t, proj.Alive())
	assert.Equal(t, 93, near.Health())
	assert.Equal(t, 100, far.Health())
	assert.Empty(t, h.w.Projectiles())

	require.Equal(t, 1, h.sink.count(core.CommandHit))
	hit := h.sink.events[core.CommandHit][0].(core.HitEvent)
	assert.Equal(t, near.ID(), hit.VictimID)
	assert.Equal(t, 7, hit.Damage)
	assert.Equal(t, 93, hit.HealthLeft)
	assert.InDelta(t, 4.0, hit.Position.Z, 1e-9)

	path := h.sink.events[core.CommandPath][0].(core.ProjectilePath)
	assert.Equal(t, near.ID(), path.HitVictimID)
	assert.False(t, path.Expired)
	assert.Len(t, path.Points, 2)
}

func TestProjectile_LevelShotHitsSpawnedCombatant(t *testing.T) {
	h := startedHarness(t, stubRNG{f: 0.99})
	require.NoError(t, h.w.Director().BeginLevel())
	p := h.w.Player()

	var target Combatant
	for _, c := range h.w.Roster().Members() {
		if target == nil || c.Position().Sub(p.Position()).Flat().Len() < target.Position().Sub(p.Position()).Flat().Len() {
			target = c
		}
	}
	require.NotNil(t, target)

	p.SetAim(target.Position().Sub(p.Position()).Flat())
	assert.Zero(t, p.Aim().Y)

	h.w.clock = 1
	proj, err := p.Shoot()
	require.NoError(t, err)
	for i := 0; i < 20 && proj.Alive(); i++ {
		h.w.advanceProjectiles(0.01)
	}

	assert.False(t, proj.Alive())
	assert.Equal(t, 93, target.Health())
	require.Equal(t, 1, h.sink.count(core.CommandHit))
	assert.Equal(t, target.ID(), h.sink.events[core.CommandHit][0].(core.HitEvent).VictimID)
}

func TestProjectile_LevelShotAfterWaveClosesIn(t *testing.T) {
	h := startedHarness(t, stubRNG{f: 0.99})
	require.NoError(t, h.w.Director().BeginLevel())
	for range 100 {
		h.w.Tick(0.05, Input{})
	}
	p := h.w.Player()
	require.True(t, p.Alive())

	hits := 0
	for range 20 {
		members := h.w.Roster().Members()
		require.NotEmpty(t, members)
		aim := members[0].Position().Sub(p.Position()).Flat()
		h.w.Tick(0.05, Input{Aim: aim, Fire: true})
		hits = h.sink.count(core.CommandHit)
	}
	assert.Positive(t, hits)
}

func TestProjectile_KillsAfterEnoughHits(t *testing.T) {
	h := startedHarness(t, stubRNG{})
	c := h.spawn(t, core.StandardRanged, core.V3(0, 0.5, 5))
	p := h.w.Player()

	for i := range 15 {
		h.w.clock = 1 + float64(i)
		_, err := p.Shoot()
		require.NoError(t, err)
		h.w.advanceProjectiles(0.05)
	}
	assert.Equal(t, 0, c.Health())
	assert.Equal(t, 0, h.w.Roster().Len())
	assert.Equal(t, 1, h.sink.count(core.CommandKill))
}

func TestProjectile_ExpiresAfterLifetime(t *testing.T) {
	h := startedHarness(t, stubRNG{})
	p := h.w.Player()
	p.SetAim(core.V3(0, 1, 0))

	h.w.clock = 1
	proj, err := p.Shoot()
	require.NoError(t, err)

	for range 29 {
		h.w.Tick(0.1, Input{})
	}
	assert.True(t, proj.Alive())

	h.w.Tick(0.1, Input{})
	h.w.Tick(0.1, Input{})
	assert.False(t, proj.Alive())
	assert.Empty(t, h.w.Projectiles())

	path := h.sink.events[core.CommandPath][0].(core.ProjectilePath)
	assert.True(t, path.Expired)
	assert.Equal(t, uint64(0), path.HitVictimID)
	assert.Equal(t, 1, h.visuals.destroyed[proj.handle])
}

func TestSphereEntry(t *testing.T) {
	origin := core.V3(0, 0, 0)
	dir := core.V3(0, 0, 1)

	at, ok := sphereEntry(origin, dir, 10, core.V3(0, 0, 5), 1)
	assert.True(t, ok)
	assert.InDelta(t, 4, at, 1e-9)

	_, ok = sphereEntry(origin, dir, 3, core.V3(0, 0, 5), 1)
	assert.False(t, ok, "segment too short")

	_, ok = sphereEntry(origin, dir, 10, core.V3(2, 0, 5), 1)
	assert.False(t, ok, "passes beside")

	_, ok = sphereEntry(origin, dir, 10, core.V3(0, 0, -5), 1)
	assert.False(t, ok, "behind")

	at, ok = sphereEntry(origin, dir, 10, core.V3(0.5, 0, 0), 1)
	assert.True(t, ok, "starts inside")
	assert.Equal(t, 0.0, at)
}
