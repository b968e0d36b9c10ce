// Package save moves world snapshots between the simulation and a storage
// backend.
package save

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/skirmish-game/skirmish/internal/level"
	"github.com/skirmish-game/skirmish/internal/storage"
	"github.com/skirmish-game/skirmish/pkg/core"
)

// DefaultSlot is the slot used when none is configured.
const DefaultSlot = "savefile"

// Snapshotter is the part of the world a save touches.
type Snapshotter interface {
	Snapshot() core.SaveState
	Restore(s core.SaveState) error
}

// Dependencies holds the collaborators of a Manager.
type Dependencies struct {
	Backend storage.Backend
	Codec   *Codec
	Slot    string
	Logger  *slog.Logger
}

// Manager saves and loads one slot.
type Manager struct {
	backend storage.Backend
	codec   *Codec
	slot    string
	log     *slog.Logger
}

// NewManager creates a manager. The backend must already be initialized.
func NewManager(deps Dependencies) (*Manager, error) {
	if deps.Backend == nil {
		return nil, errors.New("save manager needs a storage backend")
	}
	if deps.Codec == nil {
		c, err := NewCodec(false)
		if err != nil {
			return nil, err
		}
		deps.Codec = c
	}
	if deps.Slot == "" {
		deps.Slot = DefaultSlot
	}
	if err := core.CheckSlot(deps.Slot); err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Manager{
		backend: deps.Backend,
		codec:   deps.Codec,
		slot:    deps.Slot,
		log:     deps.Logger,
	}, nil
}

func (m *Manager) Slot() string { return m.slot }

// Location describes where the slot lives, when the backend can say.
func (m *Manager) Location() string {
	if l, ok := m.backend.(storage.Locator); ok {
		return l.Location(m.slot)
	}
	return m.slot
}

// Save snapshots w and writes it to the slot.
func (m *Manager) Save(w Snapshotter) error {
	s := w.Snapshot()
	if err := m.Write(s); err != nil {
		return err
	}
	m.log.Info("game saved",
		"slot", m.slot,
		"level", s.CurrentLevelIndex+1,
		"enemies", len(s.Roster),
		"playerHealth", s.PlayerHealth)
	return nil
}

// Load reads the slot and applies it to w. On any error w is unchanged.
func (m *Manager) Load(w Snapshotter) error {
	s, err := m.Read()
	if err != nil {
		return err
	}
	if err := w.Restore(s); err != nil {
		return newError("load", m.slot, ErrSaveCorrupt, err)
	}
	m.log.Info("game loaded",
		"slot", m.slot,
		"level", s.CurrentLevelIndex+1,
		"enemies", len(s.Roster),
		"savedAt", s.SavedAt)
	return nil
}

// Read decodes the slot without applying it.
func (m *Manager) Read() (core.SaveState, error) {
	blob, err := m.backend.Read(m.slot)
	if errors.Is(err, storage.ErrNotFound) {
		return core.SaveState{}, newError("load", m.slot, ErrSaveNotFound, nil)
	}
	if err != nil {
		return core.SaveState{}, newError("load", m.slot, ErrSaveCorrupt, err)
	}
	s, err := m.codec.Decode(blob)
	if err != nil {
		return core.SaveState{}, newError("load", m.slot, ErrSaveCorrupt, err)
	}
	return s, nil
}

// Write encodes s and stores it in the slot.
func (m *Manager) Write(s core.SaveState) error {
	if s.Version == 0 {
		s.Version = core.SaveStateVersion
	}
	blob, err := m.codec.Encode(s)
	if err != nil {
		return newError("save", m.slot, ErrSaveFailed, err)
	}
	if err := m.backend.Write(m.slot, blob); err != nil {
		return newError("save", m.slot, ErrSaveFailed, err)
	}
	return nil
}

// Edit runs a read-modify-write cycle on the slot. The slot is only
// rewritten when fn succeeds.
func (m *Manager) Edit(fn func(s *core.SaveState) error) error {
	s, err := m.Read()
	if err != nil {
		return err
	}
	if err := fn(&s); err != nil {
		return newError("edit", m.slot, ErrSaveFailed, err)
	}
	return m.Write(s)
}

// SetPlayerHealth returns an edit that sets player health, clamped to [0, maxHealth].
func SetPlayerHealth(health, maxHealth int) func(*core.SaveState) error {
	return func(s *core.SaveState) error {
		s.PlayerHealth = min(max(health, 0), maxHealth)
		return nil
	}
}

// SetLevel returns an edit that moves the save to level index and replaces the
// roster with that level's canonical manifest.
func SetLevel(catalog *level.Catalog, index int) func(*core.SaveState) error {
	return func(s *core.SaveState) error {
		roster, err := catalog.CanonicalRoster(index)
		if err != nil {
			return fmt.Errorf("set level %d: %w", index+1, err)
		}
		s.CurrentLevelIndex = index
		s.Roster = roster
		return nil
	}
}
