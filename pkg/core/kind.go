// pkg/core/kind.go
package core

import (
	"fmt"
	"strings"
)

// CombatantKind identifies one of the hostile variants.
type CombatantKind uint8

const (
	KindUnknown CombatantKind = iota
	StandardMelee
	FancyMelee
	StandardRanged
	FancyRanged
)

// AllKinds lists every spawnable kind in manifest order.
var AllKinds = []CombatantKind{StandardMelee, FancyMelee, StandardRanged, FancyRanged}

var kindNames = map[CombatantKind]string{
	StandardMelee:  "standard_melee",
	FancyMelee:     "fancy_melee",
	StandardRanged: "standard_ranged",
	FancyRanged:    "fancy_ranged",
}

// legacy class names written by older save files and editors
var kindAliases = map[string]CombatantKind{
	"standardenemy":     StandardMelee,
	"fancyenemy":        FancyMelee,
	"standardcameraman": StandardRanged,
	"fancycameraman":    FancyRanged,
}

func (k CombatantKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a spawnable kind.
func (k CombatantKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Fancy kinds siphon the damage they deal back into their own health.
func (k CombatantKind) Fancy() bool {
	return k == FancyMelee || k == FancyRanged
}

// Ranged reports whether k belongs to the camera-operator family.
func (k CombatantKind) Ranged() bool {
	return k == StandardRanged || k == FancyRanged
}

// ParseCombatantKind accepts the canonical snake_case name or a legacy class name.
func ParseCombatantKind(s string) (CombatantKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == needle {
			return k, nil
		}
	}
	if k, ok := kindAliases[needle]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("unknown combatant kind %q", s)
}

func (k CombatantKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid combatant kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *CombatantKind) UnmarshalText(text []byte) error {
	parsed, err := ParseCombatantKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
