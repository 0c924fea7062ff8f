package ws

import (
	"time"

	"github.com/HerbHall/storefront/internal/theme"
)

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	// MessageThemeCurrent is sent once when a client connects.
	MessageThemeCurrent MessageType = "theme.current"
	// MessageThemeSelected is broadcast after every theme propagation.
	MessageThemeSelected MessageType = "theme.selected"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	ThemeID   theme.ID    `json:"theme_id"`
	Marker    string      `json:"marker"`
	Timestamp time.Time   `json:"timestamp"`
	Data      ThemeData   `json:"data"`
}

// ThemeData is the payload of theme messages: the display name and the
// variables the page should apply.
type ThemeData struct {
	Name      string            `json:"name"`
	Variables map[string]string `json:"variables"`
}

func themeMessage(typ MessageType, id theme.ID, name string, vars []theme.Variable, at time.Time) Message {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return Message{
		Type:      typ,
		ThemeID:   id,
		Marker:    theme.MarkerFor(id),
		Timestamp: at,
		Data:      ThemeData{Name: name, Variables: m},
	}
}
