// Package campaign defines the immutable content a playthrough runs against:
// the scene graph, choices with their checks and outcomes, and the world map
// topology. Content is loaded once and shared by reference; nothing in this
// package mutates after load.
package campaign

import "github.com/jwebster45206/emberfall/pkg/hero"

// Campaign is a complete story definition.
type Campaign struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Synopsis     string    `json:"synopsis"`
	IntroSceneID string    `json:"introSceneId"`
	Guidance     []string  `json:"guidance,omitempty"`
	Scenes       []Scene   `json:"scenes"`
	Map          *WorldMap `json:"map,omitempty"`
}

// Scene is a node in the story graph.
type Scene struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Narrative       string   `json:"narrative"`
	LocationID      string   `json:"locationId,omitempty"`
	Options         []Choice `json:"options"`
	Once            bool     `json:"once,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	OnEnter         *Effect  `json:"onEnter,omitempty"`
	FallbackSceneID *string  `json:"fallbackSceneId,omitempty"`
}

// Choice is a player-selectable option. Exactly one of AutoSuccess or
// SkillCheck is set; Validate enforces the exclusivity.
type Choice struct {
	ID           string      `json:"id"`
	Label        string      `json:"label"`
	Description  string      `json:"description,omitempty"`
	RequiresFlag string      `json:"requiresFlag,omitempty"`
	HideIfFlag   string      `json:"hideIfFlag,omitempty"`
	AutoSuccess  *Outcome    `json:"autoSuccess,omitempty"`
	SkillCheck   *SkillCheck `json:"skillCheck,omitempty"`
}

// SkillCheck is a d20 roll against a difficulty class.
type SkillCheck struct {
	Ability            hero.Ability `json:"ability"`
	Skill              hero.Skill   `json:"skill,omitempty"`
	DC                 int          `json:"dc"`
	AdvantageIfFlag    string       `json:"advantageIfFlag,omitempty"`
	DisadvantageIfFlag string       `json:"disadvantageIfFlag,omitempty"`
	Success            Outcome      `json:"success"`
	Failure            Outcome      `json:"failure"`
}

// Outcome is the resolved result of a choice. A nil NextSceneID marks the
// terminal transition into the epilogue.
type Outcome struct {
	ID          string  `json:"id"`
	NextSceneID *string `json:"nextSceneId"`
	Narrative   string  `json:"narrative"`
	Effects     *Effect `json:"effects,omitempty"`
}

// Effect is a declarative set of hero-state mutations.
type Effect struct {
	AddItems     []string                     `json:"addItems,omitempty"`
	RemoveItems  []string                     `json:"removeItems,omitempty"`
	Resources    *ResourceDelta               `json:"resources,omitempty"`
	Flags        map[string]bool              `json:"flags,omitempty"`
	Allies       map[string]hero.Relationship `json:"allies,omitempty"`
	StatusAdjust map[string]int               `json:"statusAdjust,omitempty"`
	Notes        []string                     `json:"notes,omitempty"`
}

// ResourceDelta adjusts the hero's resource pools. Zero fields are no-ops.
type ResourceDelta struct {
	HitPoints     int `json:"hitPoints,omitempty"`
	TempHitPoints int `json:"tempHitPoints,omitempty"`
	Inspiration   int `json:"inspiration,omitempty"`
}

// WorldMap is display-only topology; it never affects resolution logic.
type WorldMap struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Background  string     `json:"background,omitempty"`
	Description string     `json:"description,omitempty"`
	Locations   []Location `json:"locations"`
}

// Location is a place on the world map. Connections form a general
// undirected graph.
type Location struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	Position    Position `json:"position"`
	SceneIDs    []string `json:"sceneIds"`
	Connections []string `json:"connections,omitempty"`
	Tier        string   `json:"tier,omitempty"`
}

// Position is the location's coordinate on the map canvas.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Scene returns the scene with the given id.
func (c *Campaign) Scene(id string) (*Scene, bool) {
	for i := range c.Scenes {
		if c.Scenes[i].ID == id {
			return &c.Scenes[i], true
		}
	}
	return nil, false
}

// Location returns the map location with the given id.
func (c *Campaign) Location(id string) (*Location, bool) {
	if c.Map == nil {
		return nil, false
	}
	for i := range c.Map.Locations {
		if c.Map.Locations[i].ID == id {
			return &c.Map.Locations[i], true
		}
	}
	return nil, false
}

// Choice returns the choice with the given id within the scene.
func (s *Scene) Choice(id string) (*Choice, bool) {
	for i := range s.Options {
		if s.Options[i].ID == id {
			return &s.Options[i], true
		}
	}
	return nil, false
}

// Outcomes returns every outcome a choice can produce.
func (ch *Choice) Outcomes() []*Outcome {
	if ch.AutoSuccess != nil {
		return []*Outcome{ch.AutoSuccess}
	}
	if ch.SkillCheck != nil {
		return []*Outcome{&ch.SkillCheck.Success, &ch.SkillCheck.Failure}
	}
	return nil
}
