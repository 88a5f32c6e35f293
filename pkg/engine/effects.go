package engine

import (
	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/hero"
)

// ApplyEffect applies a declarative effect to a hero sheet and returns the
// updated sheet plus any log entries the effect produced. The input sheet is
// never mutated; callers keep the previous value for audit.
//
// Mutations run in a fixed order for determinism: add items, remove items,
// resources, flags, allies, status counters, notes. Removing an absent item
// is a no-op. Resource pools and status counters clamp at zero with no
// maximum enforced at this layer.
func ApplyEffect(sheet *hero.Sheet, e *campaign.Effect) (*hero.Sheet, []LogEntry) {
	out := sheet.Clone()
	if e == nil || out == nil {
		return out, nil
	}

	out.Equipment = append(out.Equipment, e.AddItems...)
	for _, item := range e.RemoveItems {
		out.Equipment = removeItem(out.Equipment, item)
	}

	if d := e.Resources; d != nil {
		out.Resources.HitPoints = clampZero(out.Resources.HitPoints + d.HitPoints)
		out.Resources.TempHitPoints = clampZero(out.Resources.TempHitPoints + d.TempHitPoints)
		out.Resources.Inspiration = clampZero(out.Resources.Inspiration + d.Inspiration)
	}

	if len(e.Flags) > 0 && out.Flags == nil {
		out.Flags = make(map[string]bool, len(e.Flags))
	}
	for name, value := range e.Flags {
		out.Flags[name] = value
	}

	if len(e.Allies) > 0 && out.Allies == nil {
		out.Allies = make(map[string]hero.Relationship, len(e.Allies))
	}
	for npc, rel := range e.Allies {
		out.Allies[npc] = rel
	}

	if len(e.StatusAdjust) > 0 && out.Status == nil {
		out.Status = make(map[string]int, len(e.StatusAdjust))
	}
	for counter, delta := range e.StatusAdjust {
		out.Status[counter] = clampZero(out.Status[counter] + delta)
	}

	var entries []LogEntry
	for _, note := range e.Notes {
		entries = append(entries, newLogEntry(EntryEffect, note, ""))
	}
	return out, entries
}

func removeItem(items []string, name string) []string {
	for i, item := range items {
		if item == name {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
