package engine

import "errors"

var (
	// ErrNoHero is returned when an operation requires a created hero.
	ErrNoHero = errors.New("session has no hero")

	// ErrChoiceNotFound is returned when the choice id does not exist in the
	// current scene.
	ErrChoiceNotFound = errors.New("choice not found")

	// ErrChoiceGated is returned when a flag predicate blocks the choice.
	ErrChoiceGated = errors.New("choice is gated")

	// ErrNavigationCycle is returned when fallback transitions exceed the
	// scene count. Indicates malformed content, not a recoverable condition.
	ErrNavigationCycle = errors.New("fallback navigation cycle detected")

	// ErrGameAlreadyComplete is returned by ChooseOption after the session
	// has reached a terminal outcome.
	ErrGameAlreadyComplete = errors.New("game is already complete")
)
