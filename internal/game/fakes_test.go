package game

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/pkg/core"
	"github.com/stretchr/testify/require"
)

type fakeVisuals struct {
	next      Handle
	spawned   []core.CombatantKind
	destroyed map[Handle]int
	bars      map[Handle]HealthBar
	hud       HUD
	moves     int
}

func newFakeVisuals() *fakeVisuals {
	return &fakeVisuals{destroyed: map[Handle]int{}, bars: map[Handle]HealthBar{}}
}

func (f *fakeVisuals) SpawnCombatant(kind core.CombatantKind, _, _ core.Vec3) Handle {
	f.next++
	f.spawned = append(f.spawned, kind)
	return f.next
}

func (f *fakeVisuals) SpawnProjectile(core.Vec3) Handle {
	f.next++
	return f.next
}

func (f *fakeVisuals) Move(Handle, core.Vec3, core.Vec3)    { f.moves++ }
func (f *fakeVisuals) SetHealthBar(h Handle, bar HealthBar) { f.bars[h] = bar }
func (f *fakeVisuals) UpdateHUD(hud HUD)                    { f.hud = hud }
func (f *fakeVisuals) Destroy(h Handle)                     { f.destroyed[h]++ }

type fakeAudio struct {
	cues []string
}

func (f *fakeAudio) Play(cue string) { f.cues = append(f.cues, cue) }

type fakeSink struct {
	events map[string][]any
}

func (f *fakeSink) Publish(command string, payload any) {
	if f.events == nil {
		f.events = map[string][]any{}
	}
	f.events[command] = append(f.events[command], payload)
}

func (f *fakeSink) count(command string) int { return len(f.events[command]) }

// stubRNG always rolls the same values.
type stubRNG struct {
	f float64
	n int
}

func (s stubRNG) Float64() float64 { return s.f }

func (s stubRNG) Intn(n int) int { return min(s.n, n-1) }

type harness struct {
	w       *World
	visuals *fakeVisuals
	audio   *fakeAudio
	sink    *fakeSink
}

func newHarness(t *testing.T, rng RNG) *harness {
	t.Helper()
	h := &harness{visuals: newFakeVisuals(), audio: &fakeAudio{}, sink: &fakeSink{}}
	w, err := NewWorld(Dependencies{
		Tuning:  config.DefaultTuning(),
		Visuals: h.visuals,
		Audio:   h.audio,
		Events:  h.sink,
		RNG:     rng,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:   func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	h.w = w
	return h
}

// started returns a harness with the player spawned and no level loaded.
func startedHarness(t *testing.T, rng RNG) *harness {
	t.Helper()
	h := newHarness(t, rng)
	require.NoError(t, h.w.Director().Start())
	return h
}

func (h *harness) spawn(t *testing.T, kind core.CombatantKind, pos core.Vec3) Combatant {
	t.Helper()
	c, err := NewCombatant(h.w, kind, pos)
	require.NoError(t, err)
	h.w.enlist(c)
	return c
}
