package main

import (
	"bytes"
	"testing"

	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/internal/save"
	"github.com/skirmish-game/skirmish/internal/storage/memory"
	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) (*editor, *bytes.Buffer) {
	t.Helper()
	backend := memory.New()
	require.NoError(t, backend.Init())
	saves, err := save.NewManager(save.Dependencies{Backend: backend})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &editor{saves: saves, catalog: level.Default(), maxHealth: 100, out: out}, out
}

func seed(t *testing.T, e *editor) {
	t.Helper()
	require.NoError(t, e.saves.Write(core.SaveState{
		PlayerPosition: core.V3(1, 0, 2),
		PlayerHealth:   40,
		Roster: []core.CombatantRecord{
			{Kind: core.FancyMelee, Position: core.V3(3, 0, 3), Health: 12},
		},
	}))
}

func TestShow(t *testing.T) {
	e, out := newEditor(t)
	seed(t, e)

	require.NoError(t, e.run([]string{"show"}))
	assert.Contains(t, out.String(), "level:    1/3")
	assert.Contains(t, out.String(), "health:   40/100")
	assert.Contains(t, out.String(), "fancy_melee")
}

func TestSetHealth_Clamps(t *testing.T) {
	e, _ := newEditor(t)
	seed(t, e)

	require.NoError(t, e.run([]string{"set-health", "250"}))
	s, err := e.saves.Read()
	require.NoError(t, err)
	assert.Equal(t, 100, s.PlayerHealth)

	require.NoError(t, e.run([]string{"set-health", "-3"}))
	s, err = e.saves.Read()
	require.NoError(t, err)
	assert.Equal(t, 0, s.PlayerHealth)
}

func TestSetLevel_ResetsRoster(t *testing.T) {
	e, _ := newEditor(t)
	seed(t, e)

	require.NoError(t, e.run([]string{"set-level", "2"}))
	s, err := e.saves.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentLevelIndex)

	want, err := e.catalog.CanonicalRoster(1)
	require.NoError(t, err)
	assert.Equal(t, want, s.Roster)
	assert.Equal(t, 40, s.PlayerHealth)
}

func TestRun_Errors(t *testing.T) {
	e, _ := newEditor(t)

	assert.ErrorIs(t, e.run([]string{"show"}), save.ErrSaveNotFound)

	seed(t, e)
	tests := [][]string{
		nil,
		{"explode"},
		{"set-health"},
		{"set-health", "lots"},
		{"set-level", "0"},
		{"set-level", "4"},
	}
	for _, args := range tests {
		assert.Error(t, e.run(args), "args %v", args)
	}

	// failed edits leave the slot alone
	s, err := e.saves.Read()
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentLevelIndex)
	assert.Len(t, s.Roster, 1)
}
