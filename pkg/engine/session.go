package engine

import (
	"maps"

	"github.com/jwebster45206/emberfall/pkg/hero"
)

// Snapshot is the complete serializable state of one playthrough. It is the
// only unit persisted and restored as a whole. Wire keys are camelCase so
// snapshots saved by the original deployment remain loadable.
type Snapshot struct {
	Hero           *hero.Sheet                   `json:"hero"`
	CurrentSceneID *string                       `json:"currentSceneId"`
	Log            []LogEntry                    `json:"log"`
	VisitedScenes  map[string]int                `json:"visitedScenes"`
	Conversation   map[string][]ConversationTurn `json:"conversation"`
}

// NewSnapshot returns an empty pre-hero session. Collections are initialized
// so the snapshot marshals with all four top-level keys present.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Log:           []LogEntry{},
		VisitedScenes: map[string]int{},
		Conversation:  map[string][]ConversationTurn{},
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Hero:          s.Hero.Clone(),
		Log:           append([]LogEntry{}, s.Log...),
		VisitedScenes: maps.Clone(s.VisitedScenes),
		Conversation:  make(map[string][]ConversationTurn, len(s.Conversation)),
	}
	if s.CurrentSceneID != nil {
		id := *s.CurrentSceneID
		out.CurrentSceneID = &id
	}
	if out.VisitedScenes == nil {
		out.VisitedScenes = map[string]int{}
	}
	for npc, turns := range s.Conversation {
		out.Conversation[npc] = append([]ConversationTurn{}, turns...)
	}
	return out
}

// normalize ensures collection fields are non-nil after JSON decoding.
func (s *Snapshot) normalize() {
	if s.Log == nil {
		s.Log = []LogEntry{}
	}
	if s.VisitedScenes == nil {
		s.VisitedScenes = map[string]int{}
	}
	if s.Conversation == nil {
		s.Conversation = map[string][]ConversationTurn{}
	}
}
