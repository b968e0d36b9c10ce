package game

import (
	"testing"

	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func killAll(w *World) {
	for _, c := range w.Roster().Members() {
		c.DecrementHealth(c.MaxHealth())
	}
}

func TestDirector_StartAndBegin(t *testing.T) {
	h := newHarness(t, stubRNG{f: 0.99})
	d := h.w.Director()

	assert.Equal(t, NotStarted, d.Phase())
	assert.Nil(t, h.w.Player())
	assert.ErrorIs(t, d.BeginLevel(), ErrWrongPhase)

	require.NoError(t, d.Start())
	assert.Equal(t, AwaitingStart, d.Phase())
	assert.NotNil(t, h.w.Player())
	assert.ErrorIs(t, d.Start(), ErrWrongPhase)

	require.NoError(t, d.BeginLevel())
	assert.Equal(t, InProgress, d.Phase())
	assert.Equal(t, 4, h.w.Roster().Len())
	assert.Equal(t, []core.CombatantKind{core.StandardMelee, core.FancyMelee, core.StandardRanged, core.FancyRanged}, h.visuals.spawned)

	wave := h.sink.events[core.CommandWave][0].(core.WaveEvent)
	assert.Equal(t, core.WaveStarted, wave.State)
	assert.Equal(t, 4, wave.Spawned)
	assert.Len(t, wave.Roster, 4)
}

func TestDirector_LoadDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		roll  float64
		level int
		want  int
	}{
		{"never below chance", 0.99, 0, 4},
		{"always above chance", 0, 0, 8},
		{"level two no dups", 0.5, 1, 8},
		{"level two all dups", 0.49, 1, 16},
		{"level three all dups", 0.69, 2, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := startedHarness(t, stubRNG{f: tt.roll})
			n, err := h.w.Director().Load(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.want, h.w.Roster().Len())
		})
	}
}

func TestDirector_DuplicateOffset(t *testing.T) {
	h := startedHarness(t, stubRNG{f: 0})
	_, err := h.w.Director().Load(0)
	require.NoError(t, err)

	records := h.w.Roster().Records()
	require.Len(t, records, 8)
	assert.Equal(t, core.V3(10, 0.5, 2), records[0].Position)
	assert.Equal(t, core.V3(12, 0.5, 4), records[1].Position)
	assert.Equal(t, records[0].Kind, records[1].Kind)
}

func TestDirector_LoadUnknownLevel(t *testing.T) {
	h := startedHarness(t, stubRNG{})
	_, err := h.w.Director().Load(7)
	assert.Error(t, err)
	assert.Equal(t, 0, h.w.Roster().Len())
}

func TestDirector_AdvancesThroughLevels(t *testing.T) {
	h := startedHarness(t, stubRNG{f: 0.99})
	d := h.w.Director()

	for i := range 3 {
		require.Equal(t, AwaitingStart, d.Phase())
		require.Equal(t, i, d.LevelIndex())
		require.NoError(t, d.BeginLevel())
		assert.False(t, d.Update(), "roster still populated")

		killAll(h.w)
		assert.True(t, d.AllCleared())
		assert.True(t, d.Update())
	}
	assert.Equal(t, AllLevelsComplete, d.Phase())
	assert.Equal(t, 2, d.LevelIndex())
	assert.False(t, d.Update())

	var states []core.WaveState
	for _, e := range h.sink.events[core.CommandWave] {
		states = append(states, e.(core.WaveEvent).State)
	}
	assert.Equal(t, []core.WaveState{
		core.WaveStarted, core.WaveCleared,
		core.WaveStarted, core.WaveCleared,
		core.WaveStarted, core.WaveCleared, core.WaveCompleted,
	}, states)
}

func TestDirector_LateSpawnDoesNotRevert(t *testing.T) {
	h := startedHarness(t, stubRNG{f: 0.99})
	d := h.w.Director()
	require.NoError(t, d.BeginLevel())
	killAll(h.w)
	require.True(t, d.Update())

	h.spawn(t, core.StandardMelee, core.V3(1, 0, 1))
	assert.False(t, d.Update())
	assert.Equal(t, AwaitingStart, d.Phase())
	assert.Equal(t, 1, d.LevelIndex())
}

func TestDirector_PlayerDefeated(t *testing.T) {
	h := startedHarness(t, stubRNG{f: 0.99})
	d := h.w.Director()
	require.NoError(t, d.BeginLevel())

	h.w.Player().DecrementHealth(500)
	assert.False(t, d.Update())
	assert.Equal(t, PlayerDefeated, d.Phase())

	last := h.sink.events[core.CommandWave][len(h.sink.events[core.CommandWave])-1].(core.WaveEvent)
	assert.Equal(t, core.WaveDefeated, last.State)
}

func TestDirector_AutoStart(t *testing.T) {
	h := newHarness(t, stubRNG{f: 0.99})
	d := h.w.Director()
	d.SetAutoStart(0.5)
	require.NoError(t, d.Start())

	for range 4 {
		h.w.Tick(0.1, Input{})
	}
	assert.Equal(t, AwaitingStart, d.Phase())

	h.w.Tick(0.1, Input{})
	h.w.Tick(0.1, Input{})
	assert.Equal(t, InProgress, d.Phase())
	assert.Equal(t, 4, h.w.Roster().Len())
}

func TestDirector_LevelName(t *testing.T) {
	h := startedHarness(t, stubRNG{})
	assert.NotEmpty(t, h.w.Director().LevelName())
	assert.Equal(t, "player_defeated", PlayerDefeated.String())
}
