package websocket

import (
	"encoding/json"
	"time"

	"sparin/pkg/logger"
)

// Event is the push frame sent to connected clients. Type names the
// resource that changed ("chat.message", "match.created"), Payload is the
// changed value.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// SendEventToUser marshals and delivers an event to one user.
func (m *Manager) SendEventToUser(userID string, eventType string, payload interface{}) {
	frame, err := json.Marshal(Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal %s event: %v", eventType, err)
		return
	}

	m.SendToUser(userID, frame)
}
