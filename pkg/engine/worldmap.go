package engine

import "github.com/jwebster45206/emberfall/pkg/campaign"

// LocationStatus is one map location annotated with the session's progress.
type LocationStatus struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Summary     string            `json:"summary"`
	Position    campaign.Position `json:"position"`
	Tier        string            `json:"tier,omitempty"`
	Connections []string          `json:"connections,omitempty"`
	Visited     bool              `json:"visited"`
	Current     bool              `json:"current"`
	VisitCount  int               `json:"visitCount"`
}

// WorldMapIndex is the derived, read-only view renderers consume: every map
// location with its visited/current status for this session. It never feeds
// back into resolution logic.
type WorldMapIndex struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Description string           `json:"description,omitempty"`
	Locations   []LocationStatus `json:"locations"`
}

// WorldMapIndex derives the map view from the campaign topology and the
// session's visit counts. Returns nil when the campaign has no map.
func (e *Engine) WorldMapIndex() *WorldMapIndex {
	return BuildWorldMapIndex(e.campaign, e.snap.VisitedScenes, e.snap.CurrentSceneID)
}

// BuildWorldMapIndex computes the location statuses for a given session
// state. A location counts as visited when any of its scenes has been
// entered; its visit count sums those of its scenes.
func BuildWorldMapIndex(c *campaign.Campaign, visited map[string]int, currentSceneID *string) *WorldMapIndex {
	if c.Map == nil {
		return nil
	}

	currentLocation := ""
	if currentSceneID != nil {
		if scene, ok := c.Scene(*currentSceneID); ok {
			currentLocation = scene.LocationID
		}
	}

	idx := &WorldMapIndex{
		Width:       c.Map.Width,
		Height:      c.Map.Height,
		Description: c.Map.Description,
		Locations:   make([]LocationStatus, 0, len(c.Map.Locations)),
	}
	for _, loc := range c.Map.Locations {
		status := LocationStatus{
			ID:          loc.ID,
			Name:        loc.Name,
			Summary:     loc.Summary,
			Position:    loc.Position,
			Tier:        loc.Tier,
			Connections: loc.Connections,
			Current:     currentLocation != "" && loc.ID == currentLocation,
		}
		for _, sceneID := range loc.SceneIDs {
			status.VisitCount += visited[sceneID]
		}
		status.Visited = status.VisitCount > 0
		idx.Locations = append(idx.Locations, status)
	}
	return idx
}
