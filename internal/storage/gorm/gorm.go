// Package gormstorage keeps save slots in a SQL table through GORM. The same
// code serves SQLite and PostgreSQL; the dialect comes from the database manager.
package gormstorage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/internal/database"
	"github.com/skirmish-game/skirmish/pkg/core"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrChecksum is returned when a stored payload no longer matches its digest.
var ErrChecksum = errors.New("save slot checksum mismatch")

// SaveSlot is one row of the save_slots table.
type SaveSlot struct {
	Slot      string            `gorm:"primaryKey;size:64"`
	Payload   []byte            `gorm:"not null"`
	Meta      datatypes.JSONMap `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SaveSlot) TableName() string {
	return "save_slots"
}

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	// Database may be shared; when nil the backend opens its own.
	Database *database.Manager
	Driver   string
	Path     string
	Logger   zerolog.Logger
}

// Backend implements storage.Backend on a gorm connection.
type Backend struct {
	deps Dependencies
	db   *gorm.DB
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init connects if needed and migrates the slot table.
func (b *Backend) Init() error {
	if b.deps.Database == nil {
		b.deps.Database = database.NewManager(b.deps.Logger)
	}
	m := b.deps.Database
	if m.DB == nil {
		if err := m.Open(b.deps.Driver, b.deps.Path); err != nil {
			return fmt.Errorf("failed to connect save database: %w", err)
		}
	}
	if err := m.Migrate(&SaveSlot{}); err != nil {
		return fmt.Errorf("failed to setup save table: %w", err)
	}
	b.db = m.DB
	return nil
}

func (b *Backend) Close() error {
	if b.deps.Database == nil {
		return nil
	}
	return b.deps.Database.Close()
}

// Write upserts the slot row in a single statement.
func (b *Backend) Write(slot string, data []byte) error {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	row := SaveSlot{
		Slot:    slot,
		Payload: data,
		Meta: datatypes.JSONMap{
			"size":   len(data),
			"sha256": digest(data),
		},
	}
	err := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "meta", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	b.deps.Logger.Debug().Str("slot", slot).Int("bytes", len(data)).Msg("Save slot written")
	return nil
}

// Read returns the payload after checking it against the stored digest.
func (b *Backend) Read(slot string) ([]byte, error) {
	if err := core.CheckSlot(slot); err != nil {
		return nil, err
	}
	var row SaveSlot
	err := b.db.Where("slot = ?", slot).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	if want, ok := row.Meta["sha256"].(string); ok && want != digest(row.Payload) {
		return nil, fmt.Errorf("read slot %s: %w", slot, ErrChecksum)
	}
	return row.Payload, nil
}

func (b *Backend) Delete(slot string) error {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	res := b.db.Where("slot = ?", slot).Delete(&SaveSlot{})
	if res.Error != nil {
		return fmt.Errorf("delete slot %s: %w", slot, res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrSlotNotFound
	}
	return nil
}

// List returns slot names in order.
func (b *Backend) List() ([]string, error) {
	var names []string
	if err := b.db.Model(&SaveSlot{}).Order("slot").Pluck("slot", &names).Error; err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return names, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
