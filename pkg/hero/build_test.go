package hero

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBuild() Build {
	return Build{
		Name:          "Kaelen",
		RaceID:        "human",
		ClassID:       "fighter",
		BackgroundID:  "soldier",
		AbilityScores: DefaultAbilityAssignment("fighter"),
		Skills:        []Skill{Perception, Survival},
	}
}

func TestNewHero(t *testing.T) {
	h, err := NewHero(validBuild())
	require.NoError(t, err)
	sheet := h.Sheet

	assert.NotEmpty(t, sheet.ID)
	assert.Equal(t, "Kaelen", sheet.Name)
	assert.Equal(t, 1, sheet.Level)
	assert.Equal(t, 2, sheet.ProficiencyBonus)

	// Human bonuses: +1 str/dex/wis on the fighter assignment (str 15, con 14, dex 13).
	assert.Equal(t, 16, sheet.AbilityScores.Strength)
	assert.Equal(t, 14, sheet.AbilityScores.Constitution)

	// Fighter saves.
	assert.True(t, sheet.SavingThrows[Strength])
	assert.True(t, sheet.SavingThrows[Constitution])
	assert.False(t, sheet.SavingThrows[Charisma])

	// Soldier background plus chosen skills.
	assert.True(t, sheet.Skills[Athletics])
	assert.True(t, sheet.Skills[Intimidation])
	assert.True(t, sheet.Skills[Perception])
	assert.True(t, sheet.Skills[Survival])
	assert.False(t, sheet.Skills[Arcana])

	// HP = hit die + con modifier.
	assert.Equal(t, 12, sheet.Resources.MaxHitPoints)
	assert.Equal(t, sheet.Resources.MaxHitPoints, sheet.Resources.HitPoints)

	// Fresh trackers.
	assert.Equal(t, 0, sheet.Status["stress"])
	assert.Empty(t, sheet.Flags)
	assert.Empty(t, sheet.Allies)
	assert.NotEmpty(t, sheet.Equipment)
	require.NotNil(t, h.Actor)
}

func TestNewHero_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Build)
		field  string
	}{
		{"empty name", func(b *Build) { b.Name = "  " }, "name"},
		{"unknown race", func(b *Build) { b.RaceID = "tiefling" }, "raceId"},
		{"unknown class", func(b *Build) { b.ClassID = "bard" }, "classId"},
		{"unknown background", func(b *Build) { b.BackgroundID = "noble" }, "backgroundId"},
		{"score too low", func(b *Build) { b.AbilityScores.Strength = 0 }, "abilityScores"},
		{"score too high", func(b *Build) { b.AbilityScores.Wisdom = 31 }, "abilityScores"},
		{"too many skills", func(b *Build) { b.Skills = []Skill{Perception, Survival, Insight} }, "skills"},
		{"skill not a class option", func(b *Build) { b.Skills = []Skill{Arcana} }, "skills"},
		{"duplicate skill", func(b *Build) { b.Skills = []Skill{Perception, Perception} }, "skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build := validBuild()
			tt.mutate(&build)

			_, err := NewHero(build)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDefaultAbilityAssignment(t *testing.T) {
	// Deterministic, primary abilities first.
	wizard := DefaultAbilityAssignment("wizard")
	assert.Equal(t, 15, wizard.Intelligence)
	assert.Equal(t, wizard, DefaultAbilityAssignment("wizard"))

	rogue := DefaultAbilityAssignment("rogue")
	assert.Equal(t, 15, rogue.Dexterity)

	// All six standard array values used exactly once.
	used := map[int]int{}
	for _, a := range Abilities {
		used[wizard.Score(a)]++
	}
	for _, v := range StandardArray {
		assert.Equal(t, 1, used[v], "standard array value %d", v)
	}
}

func TestProficiencyBonusForLevel(t *testing.T) {
	tests := []struct{ level, want int }{
		{1, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {13, 5}, {17, 6}, {0, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProficiencyBonusForLevel(tt.level), "level %d", tt.level)
	}
}
