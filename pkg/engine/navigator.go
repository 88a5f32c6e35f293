package engine

import (
	"fmt"

	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/hero"
)

// Navigator resolves choice selection against the immutable scene graph.
// It never mutates hero or session state; the engine owns transitions.
type Navigator struct {
	campaign *campaign.Campaign
}

// NewNavigator returns a navigator over the given campaign.
func NewNavigator(c *campaign.Campaign) *Navigator {
	return &Navigator{campaign: c}
}

// Select resolves a choice id within a scene against the hero's flags.
// Returns ErrChoiceNotFound when the id is not in the scene's option list and
// ErrChoiceGated when a flag predicate blocks it.
func (n *Navigator) Select(sceneID, choiceID string, sheet *hero.Sheet) (*campaign.Choice, error) {
	scene, ok := n.campaign.Scene(sceneID)
	if !ok {
		return nil, fmt.Errorf("scene %q does not exist", sceneID)
	}
	choice, ok := scene.Choice(choiceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q in scene %q", ErrChoiceNotFound, choiceID, sceneID)
	}
	if !Selectable(choice, sheet) {
		return nil, fmt.Errorf("%w: %q in scene %q", ErrChoiceGated, choiceID, sceneID)
	}
	return choice, nil
}

// Selectable reports whether the hero's flags allow taking the choice.
func Selectable(ch *campaign.Choice, sheet *hero.Sheet) bool {
	if ch.RequiresFlag != "" && !sheet.HasFlag(ch.RequiresFlag) {
		return false
	}
	if ch.HideIfFlag != "" && sheet.HasFlag(ch.HideIfFlag) {
		return false
	}
	return true
}

// VisibleChoices returns the scene's choices minus those hidden by
// hideIfFlag. A visible choice may still be gated by requiresFlag; renderers
// show those as locked.
func (n *Navigator) VisibleChoices(s *campaign.Scene, sheet *hero.Sheet) []campaign.Choice {
	out := make([]campaign.Choice, 0, len(s.Options))
	for _, ch := range s.Options {
		if ch.HideIfFlag != "" && sheet.HasFlag(ch.HideIfFlag) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// SelectableChoices returns the scene's choices the hero can currently take.
func (n *Navigator) SelectableChoices(s *campaign.Scene, sheet *hero.Sheet) []campaign.Choice {
	out := make([]campaign.Choice, 0, len(s.Options))
	for i := range s.Options {
		if Selectable(&s.Options[i], sheet) {
			out = append(out, s.Options[i])
		}
	}
	return out
}
