package game

import "github.com/skirmish-game/skirmish/pkg/core"

// Roster is the ordered set of live combatants.
type Roster struct {
	members []Combatant
}

func (r *Roster) Add(c Combatant) {
	r.members = append(r.members, c)
}

// Remove drops the combatant with id and reports whether it was present.
func (r *Roster) Remove(id uint64) bool {
	for i, c := range r.members {
		if c.ID() == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Roster) Contains(id uint64) bool {
	for _, c := range r.members {
		if c.ID() == id {
			return true
		}
	}
	return false
}

func (r *Roster) Len() int { return len(r.members) }

// Members returns a copy safe to iterate while the roster changes.
func (r *Roster) Members() []Combatant {
	out := make([]Combatant, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Roster) Clear() {
	r.members = nil
}

// Records converts the roster to its persisted form, in roster order.
func (r *Roster) Records() []core.CombatantRecord {
	out := make([]core.CombatantRecord, 0, len(r.members))
	for _, c := range r.members {
		out = append(out, core.CombatantRecord{
			Kind:     c.Kind(),
			Position: c.Position(),
			Health:   c.Health(),
		})
	}
	return out
}
