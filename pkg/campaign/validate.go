package campaign

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/emberfall/pkg/hero"
)

var validAbilities = map[hero.Ability]bool{
	hero.Strength: true, hero.Dexterity: true, hero.Constitution: true,
	hero.Intelligence: true, hero.Wisdom: true, hero.Charisma: true,
}

// Validate checks the structural invariants content must hold before a
// session may run against it: unique ids, exclusive autoSuccess/skillCheck,
// and every scene/location reference resolving.
func (c *Campaign) Validate() error {
	v := &validator{}

	if c.IntroSceneID == "" {
		v.addf("campaign has no introSceneId")
	}

	sceneIDs := make(map[string]bool, len(c.Scenes))
	for _, s := range c.Scenes {
		if sceneIDs[s.ID] {
			v.addf("duplicate scene id %q", s.ID)
		}
		sceneIDs[s.ID] = true
	}
	if c.IntroSceneID != "" && !sceneIDs[c.IntroSceneID] {
		v.addf("introSceneId %q does not exist", c.IntroSceneID)
	}

	locationIDs := make(map[string]bool)
	if c.Map != nil {
		for _, loc := range c.Map.Locations {
			if locationIDs[loc.ID] {
				v.addf("duplicate location id %q", loc.ID)
			}
			locationIDs[loc.ID] = true
		}
		for _, loc := range c.Map.Locations {
			for _, conn := range loc.Connections {
				if !locationIDs[conn] {
					v.addf("location %q connects to unknown location %q", loc.ID, conn)
				}
			}
			for _, sid := range loc.SceneIDs {
				if !sceneIDs[sid] {
					v.addf("location %q lists unknown scene %q", loc.ID, sid)
				}
			}
		}
	}

	for i := range c.Scenes {
		v.validateScene(&c.Scenes[i], sceneIDs, locationIDs, c.Map != nil)
	}

	return v.err()
}

func (v *validator) validateScene(s *Scene, sceneIDs, locationIDs map[string]bool, hasMap bool) {
	if s.LocationID != "" && hasMap && !locationIDs[s.LocationID] {
		v.addf("scene %q references unknown location %q", s.ID, s.LocationID)
	}
	if s.FallbackSceneID != nil && !sceneIDs[*s.FallbackSceneID] {
		v.addf("scene %q falls back to unknown scene %q", s.ID, *s.FallbackSceneID)
	}

	choiceIDs := make(map[string]bool, len(s.Options))
	for i := range s.Options {
		ch := &s.Options[i]
		if choiceIDs[ch.ID] {
			v.addf("scene %q has duplicate choice id %q", s.ID, ch.ID)
		}
		choiceIDs[ch.ID] = true

		// Mutually exclusive by construction; reject content that breaks it.
		if (ch.AutoSuccess != nil) == (ch.SkillCheck != nil) {
			v.addf("scene %q choice %q must have exactly one of autoSuccess or skillCheck", s.ID, ch.ID)
			continue
		}

		if sc := ch.SkillCheck; sc != nil {
			if !validAbilities[sc.Ability] {
				v.addf("scene %q choice %q has unknown ability %q", s.ID, ch.ID, sc.Ability)
			}
			if sc.Skill != "" {
				if _, ok := hero.SkillAbility[sc.Skill]; !ok {
					v.addf("scene %q choice %q has unknown skill %q", s.ID, ch.ID, sc.Skill)
				}
			}
			if sc.DC <= 0 {
				v.addf("scene %q choice %q has non-positive dc %d", s.ID, ch.ID, sc.DC)
			}
		}

		for _, out := range ch.Outcomes() {
			if out.NextSceneID != nil && !sceneIDs[*out.NextSceneID] {
				v.addf("scene %q choice %q outcome %q leads to unknown scene %q", s.ID, ch.ID, out.ID, *out.NextSceneID)
			}
		}
	}
}

// Lint reports non-fatal content issues: gate or advantage flags that no
// effect in the campaign ever sets. Catches flag-name typos early.
func (c *Campaign) Lint() []string {
	defined := make(map[string]bool)
	for i := range c.Scenes {
		collectFlags(c.Scenes[i].OnEnter, defined)
		for _, ch := range c.Scenes[i].Options {
			for _, out := range ch.Outcomes() {
				collectFlags(out.Effects, defined)
			}
		}
	}

	var warnings []string
	warn := func(sceneID, choiceID, field, flag string) {
		if flag != "" && !defined[flag] {
			warnings = append(warnings, fmt.Sprintf("scene %q choice %q: %s flag %q is never set by any effect", sceneID, choiceID, field, flag))
		}
	}
	for _, s := range c.Scenes {
		for _, ch := range s.Options {
			warn(s.ID, ch.ID, "requiresFlag", ch.RequiresFlag)
			warn(s.ID, ch.ID, "hideIfFlag", ch.HideIfFlag)
			if ch.SkillCheck != nil {
				warn(s.ID, ch.ID, "advantageIfFlag", ch.SkillCheck.AdvantageIfFlag)
				warn(s.ID, ch.ID, "disadvantageIfFlag", ch.SkillCheck.DisadvantageIfFlag)
			}
		}
	}
	return warnings
}

func collectFlags(e *Effect, into map[string]bool) {
	if e == nil {
		return
	}
	for name := range e.Flags {
		into[name] = true
	}
}

type validator struct {
	errors []string
}

func (v *validator) addf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return fmt.Errorf("invalid campaign:\n  - %s", strings.Join(v.errors, "\n  - "))
}
