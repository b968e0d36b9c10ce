// Package badgerstorage keeps save slots in an embedded Badger key-value store.
package badgerstorage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
	"github.com/skirmish-game/skirmish/pkg/core"
)

const keyPrefix = "slot/"

// Backend implements storage.Backend on a Badger database directory.
type Backend struct {
	dir string
	log zerolog.Logger

	mu sync.RWMutex
	db *badger.DB
}

// New creates a backend rooted at dir. Nothing is opened until Init.
func New(dir string, log zerolog.Logger) *Backend {
	return &Backend{dir: dir, log: log}
}

func (b *Backend) Init() error {
	opts := badger.DefaultOptions(b.dir)
	opts.Logger = badgerLogger{b.log}
	// save blobs are small and rare; keep the footprint down
	opts.MemTableSize = 8 << 20
	opts.ValueLogFileSize = 16 << 20
	opts.NumVersionsToKeep = 1

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger at %s: %w", b.dir, err)
	}

	b.mu.Lock()
	b.db = db
	b.mu.Unlock()
	return nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

func (b *Backend) handle() (*badger.DB, error) {
	if b.db == nil {
		return nil, errors.New("badger storage not initialized")
	}
	return b.db, nil
}

func (b *Backend) Write(slot string, data []byte) error {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	db, err := b.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(slot), append([]byte(nil), data...))
	})
	if err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

func (b *Backend) Read(slot string) ([]byte, error) {
	if err := core.CheckSlot(slot); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	var out []byte
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(slot))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, core.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return out, nil
}

func (b *Backend) Delete(slot string) error {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	db, err := b.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(slot)); err != nil {
			return err
		}
		return txn.Delete(key(slot))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return core.ErrSlotNotFound
	}
	return err
}

// List walks the slot keys in key order.
func (b *Backend) List() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	var names []string
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	return names, err
}

func key(slot string) []byte {
	return []byte(keyPrefix + slot)
}

// badgerLogger routes Badger's internal chatter into zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(f string, v ...any)   { l.log.Error().Msgf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Warningf(f string, v ...any) { l.log.Warn().Msgf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Infof(f string, v ...any)    { l.log.Debug().Msgf(strings.TrimSpace(f), v...) }
func (l badgerLogger) Debugf(f string, v ...any)   { l.log.Trace().Msgf(strings.TrimSpace(f), v...) }

var _ badger.Logger = badgerLogger{}
