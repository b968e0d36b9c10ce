package save

import (
	"testing"
	"time"

	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() core.SaveState {
	return core.SaveState{
		Version:        core.SaveStateVersion,
		PlayerPosition: core.V3(0.1, 2, -3.3333333333333335),
		PlayerHealth:   57,
		Roster: []core.CombatantRecord{
			{Kind: core.StandardMelee, Position: core.V3(10, 0.5, 2), Health: 100},
			{Kind: core.FancyRanged, Position: core.V3(-1e-9, 0.5, 1.0/3), Health: 13},
		},
		CurrentLevelIndex: 2,
		SavedAt:           time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestCodec(t *testing.T, compress bool) *Codec {
	t.Helper()
	c, err := NewCodec(compress)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		c := newTestCodec(t, compress)
		blob, err := c.Encode(sampleState())
		require.NoError(t, err)
		assert.Equal(t, compress, IsCompressed(blob))

		got, err := c.Decode(blob)
		require.NoError(t, err)
		assert.Equal(t, sampleState(), got)
	}
}

func TestCodec_DecodesEitherEncoding(t *testing.T) {
	plain := newTestCodec(t, false)
	packed := newTestCodec(t, true)

	blob, err := packed.Encode(sampleState())
	require.NoError(t, err)
	got, err := plain.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	blob, err = plain.Encode(sampleState())
	require.NoError(t, err)
	got, err = packed.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestCodec_StableFieldNames(t *testing.T) {
	blob, err := newTestCodec(t, false).Encode(sampleState())
	require.NoError(t, err)
	for _, field := range []string{`"version"`, `"player_position"`, `"player_health"`, `"enemies"`, `"current_level_index"`, `"saved_at"`, `"fancy_ranged"`} {
		assert.Contains(t, string(blob), field)
	}
}

func TestCodec_AcceptsLegacyKindNames(t *testing.T) {
	blob := []byte(`{"version":1,"player_position":{"x":0,"y":2,"z":0},"player_health":80,
		"enemies":[{"kind":"FancyCameraman","position":{"x":1,"y":0,"z":1},"health":50}],
		"current_level_index":0}`)
	got, err := newTestCodec(t, false).Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, core.FancyRanged, got.Roster[0].Kind)
}

func TestCodec_RejectsCorrupt(t *testing.T) {
	c := newTestCodec(t, false)
	tests := map[string][]byte{
		"empty":        {},
		"whitespace":   []byte("  \n"),
		"garbage":      []byte("\x80\x04pickle"),
		"truncated":    []byte(`{"version":1,"enemies":[`),
		"bad zstd":     append([]byte{0x28, 0xb5, 0x2f, 0xfd}, 0x00, 0x01),
		"unknown kind": []byte(`{"version":1,"player_health":5,"enemies":[{"kind":"dragon","health":1}]}`),
		"no kind":      []byte(`{"version":1,"player_health":5,"enemies":[{"health":1}]}`),
		"dead enemy":   []byte(`{"version":1,"player_health":5,"enemies":[{"kind":"fancy_melee","health":0}]}`),
		"future":       []byte(`{"version":99,"player_health":5}`),
		"negative hp":  []byte(`{"version":1,"player_health":-1}`),
		"bad level":    []byte(`{"version":1,"player_health":5,"current_level_index":-2}`),
	}
	for name, blob := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(blob)
			assert.Error(t, err)
		})
	}
}

func TestCodec_EncodeRejectsInvalidKind(t *testing.T) {
	s := sampleState()
	s.Roster[0].Kind = core.KindUnknown
	_, err := newTestCodec(t, false).Encode(s)
	assert.Error(t, err)
}
