package badgerstorage

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	b := New(dir, zerolog.Nop())
	require.NoError(t, b.Init())
	require.NoError(t, b.Write("savefile", []byte("kept")))
	require.NoError(t, b.Close())

	b = New(dir, zerolog.Nop())
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })

	got, err := b.Read("savefile")
	require.NoError(t, err)
	assert.Equal(t, []byte("kept"), got)
}

func TestNotInitialized(t *testing.T) {
	b := New(t.TempDir(), zerolog.Nop())

	assert.Error(t, b.Write("s", nil))
	_, err := b.Read("s")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrSlotNotFound)
	assert.NoError(t, b.Close())
}

func TestList_OnlySlotKeys(t *testing.T) {
	b := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.Write("b", []byte("2")))
	require.NoError(t, b.Write("a", []byte("1")))

	names, err := b.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
