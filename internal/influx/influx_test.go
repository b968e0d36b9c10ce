package influx

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waveEvent() core.WaveEvent {
	return core.WaveEvent{
		Time:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		SimTime:    42.5,
		LevelIndex: 1,
		State:      core.WaveStarted,
		Spawned:    3,
		Roster: []core.CombatantRecord{
			{Kind: core.FancyMelee, Health: 100},
			{Kind: core.FancyMelee, Health: 50},
			{Kind: core.StandardRanged, Health: 20},
		},
	}
}

func TestWavePoint(t *testing.T) {
	p := WavePoint("run-1", waveEvent())
	line := influxdb2_write.PointToLineProtocol(p, time.Second)

	assert.True(t, strings.HasPrefix(line, "wave,"))
	assert.Contains(t, line, "level=2")
	assert.Contains(t, line, "run=run-1")
	assert.Contains(t, line, "state=started")
	assert.Contains(t, line, "remaining=3i")
	assert.Contains(t, line, "remaining_health=170i")
	assert.Contains(t, line, "remaining_fancy_melee=2i")
	assert.Contains(t, line, "remaining_standard_melee=0i")
	assert.Contains(t, line, "sim_time=42.5")
	assert.Contains(t, line, "1714564800")
}

func TestConnect_Disabled(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("influx.enabled", false)

	m := NewManager(zerolog.Nop(), filepath.Join(t.TempDir(), "b.lp.gz"))
	assert.Error(t, m.Connect())
}

func TestWritePoint_BackupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "backup.lp.gz")
	m := NewManager(zerolog.Nop(), path)
	require.NoError(t, m.OpenBackup())

	require.NoError(t, m.WriteWave("run-1", waveEvent()))
	ev := waveEvent()
	ev.State = core.WaveCleared
	require.NoError(t, m.WriteWave("run-1", ev))
	require.NoError(t, m.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "state=cleared")
}

func TestWritePoint_NoSink(t *testing.T) {
	m := NewManager(zerolog.Nop(), "")
	assert.Error(t, m.WriteWave("r", waveEvent()))
	assert.NoError(t, m.Close())
}
