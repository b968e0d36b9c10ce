package game

import "errors"

var (
	// ErrPlayerNotFound is reported when a tick runs before the player has been spawned.
	ErrPlayerNotFound = errors.New("player not found")

	// Shooting refusals. These are ordinary gameplay outcomes, not faults.
	ErrAmmoDepleted = errors.New("ammo depleted")
	ErrReloading    = errors.New("weapon is reloading")
	ErrCooldown     = errors.New("weapon cooling down")
	ErrGracePeriod  = errors.New("weapon not ready yet")
	ErrPlayerDead   = errors.New("player is dead")

	// ErrInvalidSnapshot is returned by Restore when a snapshot cannot be applied.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrWrongPhase is returned when a director transition is requested from the wrong phase.
	ErrWrongPhase = errors.New("transition not allowed in current phase")
)
