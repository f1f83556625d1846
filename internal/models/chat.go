package models

import "time"

// ChatRole is the author of a tutor chat turn
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in a tutor session
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// TrafficAdvisory is the bus tracker's summary of road conditions
type TrafficAdvisory struct {
	Text        string `json:"text"`
	MapLink     string `json:"map_link,omitempty"`
	SourceTitle string `json:"source_title,omitempty"`
	// Degraded is set when the text is the offline fallback
	Degraded bool `json:"degraded"`
}
