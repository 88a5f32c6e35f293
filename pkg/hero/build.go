package hero

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	minAbilityScore = 1
	maxAbilityScore = 30
)

// Build is the character-creation request.
type Build struct {
	Name          string        `json:"name"`
	RaceID        string        `json:"raceId"`
	ClassID       string        `json:"classId"`
	BackgroundID  string        `json:"backgroundId"`
	AbilityScores AbilityScores `json:"abilityScores"`
	Skills        []Skill       `json:"skills,omitempty"` // chosen from the class skill options
}

// ValidationError rejects a malformed hero build before any state mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid hero build: %s: %s", e.Field, e.Message)
}

// ProficiencyBonusForLevel returns the proficiency bonus at a given level.
func ProficiencyBonusForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// DefaultAbilityAssignment distributes the standard array for a class:
// primary abilities first, then the rest in canonical order.
func DefaultAbilityAssignment(classID string) AbilityScores {
	var scores AbilityScores

	order := make([]Ability, 0, len(Abilities))
	if class, ok := ClassByID(classID); ok {
		order = append(order, class.PrimaryAbilities...)
	}
	for _, a := range Abilities {
		seen := false
		for _, o := range order {
			if o == a {
				seen = true
				break
			}
		}
		if !seen {
			order = append(order, a)
		}
	}

	for i, a := range order {
		scores.SetScore(a, StandardArray[i])
	}
	return scores
}

// NewHero creates a level-1 hero from a build: racial bonuses, class saving
// throws, background and chosen skill proficiencies, hit points from the
// class hit die, and starting equipment. Fails with *ValidationError before
// any state is created.
func NewHero(build Build) (*Hero, error) {
	if strings.TrimSpace(build.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	race, ok := RaceByID(build.RaceID)
	if !ok {
		return nil, &ValidationError{Field: "raceId", Message: fmt.Sprintf("unknown race %q", build.RaceID)}
	}
	class, ok := ClassByID(build.ClassID)
	if !ok {
		return nil, &ValidationError{Field: "classId", Message: fmt.Sprintf("unknown class %q", build.ClassID)}
	}
	background, ok := BackgroundByID(build.BackgroundID)
	if !ok {
		return nil, &ValidationError{Field: "backgroundId", Message: fmt.Sprintf("unknown background %q", build.BackgroundID)}
	}

	for _, a := range Abilities {
		score := build.AbilityScores.Score(a)
		if score < minAbilityScore || score > maxAbilityScore {
			return nil, &ValidationError{
				Field:   "abilityScores",
				Message: fmt.Sprintf("%s score %d out of range [%d,%d]", a, score, minAbilityScore, maxAbilityScore),
			}
		}
	}

	if len(build.Skills) > class.SkillChoices {
		return nil, &ValidationError{
			Field:   "skills",
			Message: fmt.Sprintf("class %s allows %d skill choices, got %d", class.ID, class.SkillChoices, len(build.Skills)),
		}
	}
	chosen := make(map[Skill]bool, len(build.Skills))
	for _, s := range build.Skills {
		if chosen[s] {
			return nil, &ValidationError{Field: "skills", Message: fmt.Sprintf("duplicate skill %q", s)}
		}
		option := false
		for _, o := range class.SkillOptions {
			if o == s {
				option = true
				break
			}
		}
		if !option {
			return nil, &ValidationError{Field: "skills", Message: fmt.Sprintf("skill %q is not a %s option", s, class.ID)}
		}
		chosen[s] = true
	}

	scores := build.AbilityScores
	for a, bonus := range race.AbilityBonuses {
		scores.SetScore(a, scores.Score(a)+bonus)
	}

	savingThrows := make(map[Ability]bool, len(class.SavingThrows))
	for _, a := range class.SavingThrows {
		savingThrows[a] = true
	}

	skills := make(map[Skill]bool)
	for _, s := range background.SkillProficiencies {
		skills[s] = true
	}
	for _, s := range race.SkillProficiencies {
		skills[s] = true
	}
	for s := range chosen {
		skills[s] = true
	}

	maxHP := class.HitDie + Modifier(scores.Constitution)
	if maxHP < 1 {
		maxHP = 1
	}

	equipment := make([]string, 0, len(class.StartingEquipment)+len(background.Equipment))
	equipment = append(equipment, class.StartingEquipment...)
	equipment = append(equipment, background.Equipment...)

	toolProficiencies := make([]string, 0, len(class.ToolProficiencies)+len(background.ToolProficiencies))
	toolProficiencies = append(toolProficiencies, class.ToolProficiencies...)
	toolProficiencies = append(toolProficiencies, background.ToolProficiencies...)

	languages := make([]string, 0, len(race.Languages)+len(background.Languages))
	languages = append(languages, race.Languages...)
	languages = append(languages, background.Languages...)

	sheet := &Sheet{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(build.Name),
		Level:            1,
		RaceID:           race.ID,
		ClassID:          class.ID,
		BackgroundID:     background.ID,
		AbilityScores:    scores,
		ProficiencyBonus: ProficiencyBonusForLevel(1),
		SavingThrows:     savingThrows,
		Skills:           skills,
		ArmorClass:       10 + Modifier(scores.Dexterity),
		Speed:            race.Speed,
		Resources: Resources{
			HitPoints:    maxHP,
			MaxHitPoints: maxHP,
		},
		Equipment:           equipment,
		Features:            append([]string(nil), class.Features...),
		Traits:              append([]string(nil), race.Traits...),
		Languages:           languages,
		ToolProficiencies:   toolProficiencies,
		SpellcastingAbility: class.SpellcastingAbility,
		Status: map[string]int{
			"stress":     0,
			"wounds":     0,
			"influence":  0,
			"corruption": 0,
		},
		Flags:  map[string]bool{},
		Allies: map[string]Relationship{},
	}

	return NewHeroFromSheet(sheet)
}
