package hero

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

// Hero is the runtime representation of the player character: the
// serializable Sheet plus a d20.Actor rebuilt from it.
type Hero struct {
	Sheet *Sheet
	Actor *d20.Actor
}

// NewHeroFromSheet builds a Hero from a sheet, constructing the d20.Actor.
// This is how heroes are reconstructed after a snapshot load and after every
// effect application.
func NewHeroFromSheet(sheet *Sheet) (*Hero, error) {
	if sheet == nil {
		return nil, fmt.Errorf("sheet cannot be nil")
	}

	maxHP := sheet.Resources.MaxHitPoints
	if maxHP < 1 {
		maxHP = 1
	}

	actor, err := d20.NewActor(sheet.ID).
		WithHP(maxHP).
		WithAC(sheet.ArmorClass).
		WithAttributes(sheet.AbilityScores.ToAttributes()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	if hp := sheet.Resources.HitPoints; hp != maxHP && hp > 0 {
		if err := actor.SetHP(hp); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}

	return &Hero{Sheet: sheet, Actor: actor}, nil
}

// ModifierFor returns the ability modifier derived from the actor's
// current attribute value.
func (h *Hero) ModifierFor(a Ability) int {
	if v, ok := h.Actor.Attribute(string(a)); ok {
		return Modifier(v)
	}
	return Modifier(h.Sheet.AbilityScores.Score(a))
}

// IsProficient reports skill proficiency.
func (h *Hero) IsProficient(s Skill) bool {
	return h.Sheet.Skills[s]
}

// EffectiveBonus is the flat bonus for a check against the given ability and
// optional skill: ability modifier plus proficiency bonus when proficient.
// With no skill named, the ability's saving-throw proficiency applies.
func (h *Hero) EffectiveBonus(a Ability, s Skill) int {
	bonus := h.ModifierFor(a)

	proficient := false
	if s != "" {
		proficient = h.Sheet.Skills[s]
	} else {
		proficient = h.Sheet.SavingThrows[a]
	}
	if proficient {
		bonus += h.Sheet.ProficiencyBonus
	}
	return bonus
}
