package storage

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/internal/config"
	"github.com/skirmish-game/skirmish/internal/database"
	badgerstorage "github.com/skirmish-game/skirmish/internal/storage/badger"
	"github.com/skirmish-game/skirmish/internal/storage/file"
	gormstorage "github.com/skirmish-game/skirmish/internal/storage/gorm"
	"github.com/skirmish-game/skirmish/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration. The backend is
// not initialized.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "", "file":
		return file.New(file.Config{Dir: cfg.File.Dir, Extension: cfg.File.Extension}), nil
	case "memory":
		return memory.New(), nil
	case "sqlite", "postgres":
		return gormstorage.New(gormstorage.Dependencies{
			Database: database.NewManager(log),
			Driver:   cfg.Type,
			Path:     cfg.SQLite.Path,
			Logger:   log,
		}), nil
	case "badger":
		return badgerstorage.New(cfg.Badger.Dir, log), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
