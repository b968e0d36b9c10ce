package core

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombatantKind(t *testing.T) {
	tests := []struct {
		in   string
		want CombatantKind
	}{
		{"standard_melee", StandardMelee},
		{"FANCY_RANGED", FancyRanged},
		{"FancyEnemy", FancyMelee},
		{" StandardCameraMan ", StandardRanged},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCombatantKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCombatantKind("boss")
	assert.Error(t, err)
}

func TestCombatantKind_Traits(t *testing.T) {
	assert.True(t, FancyMelee.Fancy())
	assert.True(t, FancyRanged.Fancy())
	assert.False(t, StandardMelee.Fancy())
	assert.True(t, StandardRanged.Ranged())
	assert.False(t, FancyMelee.Ranged())
	assert.False(t, KindUnknown.Valid())
}

func TestSaveState_JSONFieldNames(t *testing.T) {
	state := SaveState{
		Version:        SaveStateVersion,
		PlayerPosition: V3(1, 2, 3),
		PlayerHealth:   42,
		Roster: []CombatantRecord{
			{Kind: FancyRanged, Position: V3(0.1, 0.5, math.Pi), Health: 7},
		},
		CurrentLevelIndex: 2,
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "player_position")
	assert.Contains(t, raw, "enemies")
	assert.Equal(t, "fancy_ranged", raw["enemies"].([]any)[0].(map[string]any)["kind"])

	var back SaveState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, state.Roster, back.Roster)
	assert.Equal(t, state.PlayerPosition, back.PlayerPosition)
}

func TestCombatantKind_MarshalInvalid(t *testing.T) {
	_, err := json.Marshal(CombatantRecord{Kind: KindUnknown})
	assert.Error(t, err)
}

func TestVec3(t *testing.T) {
	v := V3(3, 0, 4)
	assert.Equal(t, 5.0, v.Len())
	assert.InDelta(t, 1.0, v.Normalize().Len(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, 5.0, V3(0, 0, 0).Dist(v))
	assert.Equal(t, V3(3, 0, 4), V3(3, 9, 4).Flat())
}

func TestCheckSlot(t *testing.T) {
	for _, ok := range []string{"savefile", "slot-2", "quick_save.v1", "A"} {
		assert.NoError(t, CheckSlot(ok), ok)
	}
	for _, bad := range []string{"", ".hidden", "../escape", "a/b", "with space", strings.Repeat("x", 65)} {
		assert.ErrorIs(t, CheckSlot(bad), ErrInvalidSlot, bad)
	}
}
