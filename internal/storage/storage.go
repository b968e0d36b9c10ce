// Package storage persists save blobs under named slots.
package storage

import "github.com/skirmish-game/skirmish/pkg/core"

// ErrNotFound is returned by Read and Delete for a slot that holds nothing.
var ErrNotFound = core.ErrSlotNotFound

// Backend is the interface all storage implementations must satisfy.
// Blobs are opaque; every backend must hand back exactly the bytes written.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Slot access. Write replaces the previous blob as a whole: a reader sees
	// either the old or the new one, never a mix.
	Write(slot string, data []byte) error
	Read(slot string) ([]byte, error)
	Delete(slot string) error
	List() ([]string, error)
}

// Locator is an optional interface for backends whose slots live at a
// user-visible location, such as a file path.
type Locator interface {
	Location(slot string) string
}
