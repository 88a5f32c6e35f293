package engine

import (
	"time"

	"github.com/google/uuid"
)

// EntryType classifies a session log entry.
type EntryType string

const (
	EntryNarration EntryType = "narration"
	EntryChoice    EntryType = "choice"
	EntryRoll      EntryType = "roll"
	EntryEffect    EntryType = "effect"
)

// LogEntry is one append-only record in the session log. CreatedAt is epoch
// milliseconds on the wire.
type LogEntry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	Label     string    `json:"label"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt int64     `json:"createdAt"`
}

func newLogEntry(t EntryType, label, detail string) LogEntry {
	return LogEntry{
		ID:        uuid.New().String(),
		Type:      t,
		Label:     label,
		Detail:    detail,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// Speaker identifies a side of a dialogue exchange.
type Speaker string

const (
	SpeakerPlayer Speaker = "player"
	SpeakerNPC    Speaker = "npc"
)

// ConversationTurn is one utterance in an NPC conversation.
type ConversationTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}
