// Package memory keeps save slots in process memory. Nothing survives a restart.
package memory

import (
	"slices"
	"sync"

	"github.com/skirmish-game/skirmish/pkg/core"
)

// Backend stores slot blobs in a map.
type Backend struct {
	slots map[string][]byte
	mu    sync.RWMutex
}

// New creates a new memory backend
func New() *Backend {
	return &Backend{slots: make(map[string][]byte)}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

func (b *Backend) Write(slot string, data []byte) error {
	if err := core.CheckSlot(slot); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots[slot] = slices.Clone(data)
	return nil
}

func (b *Backend) Read(slot string) ([]byte, error) {
	if err := core.CheckSlot(slot); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.slots[slot]
	if !ok {
		return nil, core.ErrSlotNotFound
	}
	return slices.Clone(data), nil
}

func (b *Backend) Delete(slot string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.slots[slot]; !ok {
		return core.ErrSlotNotFound
	}
	delete(b.slots, slot)
	return nil
}

// List returns the slot names in sorted order.
func (b *Backend) List() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.slots))
	for name := range b.slots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
