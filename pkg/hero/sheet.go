package hero

import "maps"

// Relationship is the tag a hero holds toward an NPC.
type Relationship string

const (
	RelationshipAlly    Relationship = "ally"
	RelationshipRival   Relationship = "rival"
	RelationshipNeutral Relationship = "neutral"
)

// Resources are the hero's spendable pools. All values are non-negative;
// the effect applier clamps at zero and enforces no maximum.
type Resources struct {
	HitPoints     int `json:"hitPoints"`
	MaxHitPoints  int `json:"maxHitPoints"`
	TempHitPoints int `json:"tempHitPoints"`
	Inspiration   int `json:"inspiration"`
}

// Sheet is the serializable hero state. Wire keys are camelCase so snapshots
// from the original deployment remain loadable.
type Sheet struct {
	ID                  string                  `json:"id"`
	Name                string                  `json:"name"`
	Level               int                     `json:"level"`
	RaceID              string                  `json:"raceId"`
	ClassID             string                  `json:"classId"`
	BackgroundID        string                  `json:"backgroundId"`
	AbilityScores       AbilityScores           `json:"abilityScores"`
	ProficiencyBonus    int                     `json:"proficiencyBonus"`
	SavingThrows        map[Ability]bool        `json:"savingThrows"`
	Skills              map[Skill]bool          `json:"skills"`
	ArmorClass          int                     `json:"armorClass"`
	Speed               int                     `json:"speed"`
	Resources           Resources               `json:"resources"`
	Equipment           []string                `json:"equipment"`
	Features            []string                `json:"features,omitempty"`
	Traits              []string                `json:"traits,omitempty"`
	Languages           []string                `json:"languages,omitempty"`
	ToolProficiencies   []string                `json:"toolProficiencies,omitempty"`
	SpellcastingAbility Ability                 `json:"spellcastingAbility,omitempty"`
	Notes               []string                `json:"notes,omitempty"`
	Status              map[string]int          `json:"status"`
	Flags               map[string]bool         `json:"flags"`
	Allies              map[string]Relationship `json:"allies"`
}

// Clone returns a deep copy of the sheet. The effect applier works on clones
// so callers keep the previous value intact.
func (s *Sheet) Clone() *Sheet {
	if s == nil {
		return nil
	}
	out := *s
	out.SavingThrows = maps.Clone(s.SavingThrows)
	out.Skills = maps.Clone(s.Skills)
	out.Status = maps.Clone(s.Status)
	out.Flags = maps.Clone(s.Flags)
	out.Allies = maps.Clone(s.Allies)
	out.Equipment = append([]string(nil), s.Equipment...)
	out.Features = append([]string(nil), s.Features...)
	out.Traits = append([]string(nil), s.Traits...)
	out.Languages = append([]string(nil), s.Languages...)
	out.ToolProficiencies = append([]string(nil), s.ToolProficiencies...)
	out.Notes = append([]string(nil), s.Notes...)
	return &out
}

// HasFlag reports whether the named story flag is currently set true.
func (s *Sheet) HasFlag(name string) bool {
	return s != nil && s.Flags[name]
}

// HasItem reports whether the named item is in the hero's equipment.
func (s *Sheet) HasItem(name string) bool {
	if s == nil {
		return false
	}
	for _, item := range s.Equipment {
		if item == name {
			return true
		}
	}
	return false
}
