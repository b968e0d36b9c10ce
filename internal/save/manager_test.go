package save

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/skirmish-game/skirmish/internal/game"
	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/internal/storage/file"
	"github.com/skirmish-game/skirmish/internal/storage/memory"
	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixedRNG struct{}

func (fixedRNG) Float64() float64 { return 0 }
func (fixedRNG) Intn(int) int     { return 0 }

func newWorld(t *testing.T) *game.World {
	t.Helper()
	w, err := game.NewWorld(game.Dependencies{RNG: fixedRNG{}, Logger: quiet})
	require.NoError(t, err)
	require.NoError(t, w.Director().Start())
	require.NoError(t, w.Director().BeginLevel())
	return w
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		codec, err := NewCodec(compress)
		require.NoError(t, err)
		t.Cleanup(codec.Close)

		m, err := NewManager(Dependencies{Backend: memory.New(), Codec: codec, Logger: quiet})
		require.NoError(t, err)

		w := newWorld(t)
		w.Roster().Members()[2].DecrementHealth(40)
		w.Player().DecrementHealth(25)
		want := w.Snapshot()

		require.NoError(t, m.Save(w))

		other := newWorld(t)
		require.NoError(t, m.Load(other))
		got := other.Snapshot()
		got.SavedAt = want.SavedAt
		assert.Equal(t, want, got)
		assert.Equal(t, game.InProgress, other.Director().Phase())
	}
}

func TestManager_EmptyRosterRoundTrip(t *testing.T) {
	m, err := NewManager(Dependencies{Backend: memory.New(), Logger: quiet})
	require.NoError(t, err)
	require.NoError(t, m.Write(core.SaveState{
		PlayerPosition:    core.V3(1, 2, 3),
		PlayerHealth:      100,
		Roster:            []core.CombatantRecord{},
		CurrentLevelIndex: 2,
	}))

	w := newWorld(t)
	require.NoError(t, m.Load(w))
	assert.Equal(t, 0, w.Roster().Len())
	assert.Equal(t, 100, w.Player().Health())
	assert.Equal(t, 2, w.Director().LevelIndex())
	assert.Equal(t, game.AwaitingStart, w.Director().Phase())

	// the next tick must not count the level as cleared
	assert.False(t, w.Tick(0.1, game.Input{}))
	assert.Equal(t, game.AwaitingStart, w.Director().Phase())
	assert.Equal(t, 2, w.Director().LevelIndex())
}

func TestManager_LoadMissing(t *testing.T) {
	m, err := NewManager(Dependencies{Backend: memory.New(), Logger: quiet})
	require.NoError(t, err)

	w := newWorld(t)
	before := w.Snapshot()

	err = m.Load(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSaveNotFound)
	assert.NotErrorIs(t, err, ErrSaveCorrupt)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "load", se.Op)
	assert.Equal(t, DefaultSlot, se.Slot)

	after := w.Snapshot()
	after.SavedAt = before.SavedAt
	assert.Equal(t, before, after)
}

func TestManager_LoadCorrupt(t *testing.T) {
	b := memory.New()
	require.NoError(t, b.Write(DefaultSlot, []byte("not a save")))
	m, err := NewManager(Dependencies{Backend: b, Logger: quiet})
	require.NoError(t, err)

	w := newWorld(t)
	err = m.Load(w)
	assert.ErrorIs(t, err, ErrSaveCorrupt)
	assert.Contains(t, err.Error(), "unmarshal save state")
}

func TestManager_LoadRejectedByWorld(t *testing.T) {
	m, err := NewManager(Dependencies{Backend: memory.New(), Logger: quiet})
	require.NoError(t, err)

	s := newWorld(t).Snapshot()
	s.CurrentLevelIndex = 40
	require.NoError(t, m.Write(s))

	err = m.Load(newWorld(t))
	assert.ErrorIs(t, err, ErrSaveCorrupt)
	assert.ErrorIs(t, err, game.ErrInvalidSnapshot)
}

func TestManager_FailedSaveKeepsPreviousFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pickle_data")
	b := file.New(file.Config{Dir: dir})
	require.NoError(t, b.Init())
	m, err := NewManager(Dependencies{Backend: b, Logger: quiet})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "savefile.pkl"), m.Location())

	w := newWorld(t)
	require.NoError(t, m.Save(w))
	before, err := os.ReadFile(m.Location())
	require.NoError(t, err)

	bad := w.Snapshot()
	bad.Roster[0].Kind = core.KindUnknown
	err = m.Write(bad)
	assert.ErrorIs(t, err, ErrSaveFailed)

	after, err := os.ReadFile(m.Location())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestManager_Edit(t *testing.T) {
	m, err := NewManager(Dependencies{Backend: memory.New(), Logger: quiet})
	require.NoError(t, err)
	require.NoError(t, m.Save(newWorld(t)))

	require.NoError(t, m.Edit(SetPlayerHealth(250, 100)))
	s, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, 100, s.PlayerHealth)

	require.NoError(t, m.Edit(SetPlayerHealth(-3, 100)))
	s, err = m.Read()
	require.NoError(t, err)
	assert.Equal(t, 0, s.PlayerHealth)

	catalog := level.Default()
	require.NoError(t, m.Edit(SetLevel(catalog, 1)))
	s, err = m.Read()
	require.NoError(t, err)
	want, err := catalog.CanonicalRoster(1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentLevelIndex)
	assert.Equal(t, want, s.Roster)

	err = m.Edit(SetLevel(catalog, 5))
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.ErrorIs(t, err, level.ErrNoSuchLevel)
	s, err = m.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentLevelIndex, "failed edit leaves the slot alone")
}

func TestManager_EditMissing(t *testing.T) {
	m, err := NewManager(Dependencies{Backend: memory.New(), Logger: quiet})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Edit(SetPlayerHealth(1, 100)), ErrSaveNotFound)
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(Dependencies{})
	assert.Error(t, err)

	_, err = NewManager(Dependencies{Backend: memory.New(), Slot: "../etc"})
	assert.ErrorIs(t, err, core.ErrInvalidSlot)
}
