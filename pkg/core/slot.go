package core

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrSlotNotFound is returned by storage backends for a slot that was never written.
	ErrSlotNotFound = errors.New("save slot not found")

	// ErrInvalidSlot is returned for slot names that cannot be stored safely.
	ErrInvalidSlot = errors.New("invalid save slot name")
)

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// CheckSlot validates a slot name. Names are used as file names and keys, so
// they are limited to letters, digits, '_', '-' and '.' and may not start
// with a separator.
func CheckSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}
