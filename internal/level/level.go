// Package level loads combatant definitions and per-level spawn manifests.
package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/skirmish-game/skirmish/pkg/core"
	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var defaultManifest []byte

// ErrNoSuchLevel is returned for a level index outside the catalog.
var ErrNoSuchLevel = errors.New("no such level")

// KindDef holds the per-kind combat numbers.
type KindDef struct {
	Kind           core.CombatantKind `yaml:"kind"`
	MaxHealth      int                `yaml:"max_health"`
	AttackRange    float64            `yaml:"attack_range"`
	AttackCooldown float64            `yaml:"attack_cooldown"`
	DamageMin      int                `yaml:"damage_min"`
	DamageMax      int                `yaml:"damage_max"`
	Speed          float64            `yaml:"speed"`
}

// SpawnEntry is one base placement, repeated once per copy with Step added each round.
type SpawnEntry struct {
	Kind     core.CombatantKind `yaml:"kind"`
	Position core.Vec3          `yaml:"position"`
	Step     core.Vec3          `yaml:"step"`
}

// Level describes how much of the base layout a level spawns and how often it reinforces.
type Level struct {
	Name            string  `yaml:"name"`
	Copies          int     `yaml:"copies"`
	DuplicateChance float64 `yaml:"duplicate_chance"`
}

// Spawn is a resolved manifest entry.
type Spawn struct {
	Kind     core.CombatantKind
	Position core.Vec3
}

type document struct {
	Kinds           []KindDef    `yaml:"kinds"`
	Base            []SpawnEntry `yaml:"base"`
	DuplicateOffset core.Vec3    `yaml:"duplicate_offset"`
	Levels          []Level      `yaml:"levels"`
}

// Catalog is the immutable set of kinds and levels for a run.
type Catalog struct {
	kinds           map[core.CombatantKind]KindDef
	base            []SpawnEntry
	duplicateOffset core.Vec3
	levels          []Level
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding level catalog: %w", err)
	}

	c := &Catalog{
		kinds:           make(map[core.CombatantKind]KindDef, len(doc.Kinds)),
		base:            doc.Base,
		duplicateOffset: doc.DuplicateOffset,
		levels:          doc.Levels,
	}

	for _, def := range doc.Kinds {
		if def.MaxHealth <= 0 {
			return nil, fmt.Errorf("kind %s: max_health must be positive", def.Kind)
		}
		if def.DamageMin < 0 || def.DamageMax < def.DamageMin {
			return nil, fmt.Errorf("kind %s: invalid damage range [%d,%d]", def.Kind, def.DamageMin, def.DamageMax)
		}
		c.kinds[def.Kind] = def
	}
	for _, entry := range c.base {
		if _, ok := c.kinds[entry.Kind]; !ok {
			return nil, fmt.Errorf("base entry uses undefined kind %s", entry.Kind)
		}
	}
	if len(c.levels) == 0 {
		return nil, errors.New("level catalog defines no levels")
	}
	for i, lvl := range c.levels {
		if lvl.Copies < 0 {
			return nil, fmt.Errorf("level %d: copies must not be negative", i+1)
		}
		if lvl.DuplicateChance < 0 || lvl.DuplicateChance > 1 {
			return nil, fmt.Errorf("level %d: duplicate_chance %v outside [0,1]", i+1, lvl.DuplicateChance)
		}
	}

	return c, nil
}

// Load reads a catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultManifest)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("built-in level catalog is invalid: %v", err))
	}
	return c
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Level returns the descriptor at a zero-based index.
func (c *Catalog) Level(index int) (Level, error) {
	if index < 0 || index >= len(c.levels) {
		return Level{}, fmt.Errorf("%w: index %d of %d", ErrNoSuchLevel, index, len(c.levels))
	}
	return c.levels[index], nil
}

// Kind returns the definition for k.
func (c *Catalog) Kind(k core.CombatantKind) (KindDef, bool) {
	def, ok := c.kinds[k]
	return def, ok
}

// DuplicateOffset is added to a spawn position to place its reinforcement.
func (c *Catalog) DuplicateOffset() core.Vec3 {
	return c.duplicateOffset
}

// Manifest resolves the deterministic spawn list of a level, copy by copy in base order.
func (c *Catalog) Manifest(index int) ([]Spawn, error) {
	lvl, err := c.Level(index)
	if err != nil {
		return nil, err
	}
	spawns := make([]Spawn, 0, lvl.Copies*len(c.base))
	for i := 0; i < lvl.Copies; i++ {
		for _, entry := range c.base {
			spawns = append(spawns, Spawn{
				Kind:     entry.Kind,
				Position: entry.Position.Add(entry.Step.Scale(float64(i))),
			})
		}
	}
	return spawns, nil
}

// CanonicalRoster is the manifest of a level at full health without reinforcements.
// Save editors reset the roster to this when they change the level.
func (c *Catalog) CanonicalRoster(index int) ([]core.CombatantRecord, error) {
	spawns, err := c.Manifest(index)
	if err != nil {
		return nil, err
	}
	roster := make([]core.CombatantRecord, 0, len(spawns))
	for _, s := range spawns {
		roster = append(roster, core.CombatantRecord{
			Kind:     s.Kind,
			Position: s.Position,
			Health:   c.kinds[s.Kind].MaxHealth,
		})
	}
	return roster, nil
}
