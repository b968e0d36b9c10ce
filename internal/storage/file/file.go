// Package file stores each save slot as one file in a directory.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skirmish-game/skirmish/pkg/core"
)

const (
	DefaultDir       = "pickle_data"
	DefaultExtension = ".pkl"
)

// Config holds configuration for the file storage backend.
type Config struct {
	Dir       string
	Extension string
}

// Backend writes slot blobs to <Dir>/<slot><Extension>.
type Backend struct {
	cfg Config
}

// New creates a file backend. Empty config fields take the defaults.
func New(cfg Config) *Backend {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	return &Backend{cfg: cfg}
}

// Init creates the save directory if needed.
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.cfg.Dir, 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	return nil
}

// Location returns the path a slot is stored at.
func (b *Backend) Location(slot string) string {
	return filepath.Join(b.cfg.Dir, slot+b.cfg.Extension)
}

// Write replaces the slot atomically: the blob goes to a temp file in the same
// directory, is synced, then renamed over the target. A failed write leaves the
// previous save untouched.
func (b *Backend) Write(slot string, data []byte) (err error) {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	if err := os.MkdirAll(b.cfg.Dir, 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.cfg.Dir, "."+slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), b.Location(slot)); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	syncDir(b.cfg.Dir)
	return nil
}

func (b *Backend) Read(slot string) ([]byte, error) {
	if err := core.CheckSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Location(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return data, nil
}

func (b *Backend) Delete(slot string) error {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	err := os.Remove(b.Location(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return core.ErrSlotNotFound
	}
	return err
}

// List returns every slot with a file in the save directory.
func (b *Backend) List() ([]string, error) {
	entries, err := os.ReadDir(b.cfg.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list save dir: %w", err)
	}

	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, b.cfg.Extension) {
			continue
		}
		slot := strings.TrimSuffix(name, b.cfg.Extension)
		if core.CheckSlot(slot) == nil {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// syncDir flushes the rename to disk where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
