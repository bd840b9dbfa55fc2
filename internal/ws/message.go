package ws

import (
	"time"
)

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageThemeApplied     MessageType = "theme.applied"
	MessagePresetRegistered MessageType = "theme.preset_registered"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Tenant    string      `json:"tenant,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}

// ThemeAppliedData is the payload for theme.applied messages. Block is the
// complete :root variables block the browser applier installs.
type ThemeAppliedData struct {
	PresetID string `json:"preset_id"`
	DarkMode bool   `json:"dark_mode"`
	Checksum string `json:"checksum"`
	Block    string `json:"block"`
}

// PresetRegisteredData is the payload for theme.preset_registered messages.
type PresetRegisteredData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}
