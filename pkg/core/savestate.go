// pkg/core/savestate.go
package core

import "time"

// SaveStateVersion is written into every snapshot so independent tools can detect the layout.
const SaveStateVersion = 1

// SaveState is the flattened, persisted snapshot of a run.
// Field names are part of the save format and must stay stable.
type SaveState struct {
	Version           int               `json:"version"`
	PlayerPosition    Vec3              `json:"player_position"`
	PlayerHealth      int               `json:"player_health"`
	Roster            []CombatantRecord `json:"enemies"`
	CurrentLevelIndex int               `json:"current_level_index"`
	SavedAt           time.Time         `json:"saved_at"`
}

// CombatantRecord is one roster entry of a SaveState.
type CombatantRecord struct {
	Kind     CombatantKind `json:"kind"`
	Position Vec3          `json:"position"`
	Health   int           `json:"health"`
}
