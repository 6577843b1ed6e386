package entity

import "time"

type Chat struct {
	ID           string   `json:"id" firestore:"id"`
	Participants []string `json:"participants" firestore:"participants"`
	Type         string   `json:"type" firestore:"type"` // "direct", "room", "community"

	LastMessage   string         `json:"lastMessage,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"lastMessageAt" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unreadCount" firestore:"unreadCount"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (c *Chat) DocumentID() string      { return c.ID }
func (c *Chat) SetDocumentID(id string) { c.ID = id }

func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID       string `json:"id" firestore:"id"`
	ChatID   string `json:"chatId" firestore:"chatId"`
	SenderID string `json:"senderId" firestore:"senderId"`
	Content  string `json:"content" firestore:"content"`

	ReadBy []string `json:"readBy" firestore:"readBy"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

func (m *Message) DocumentID() string      { return m.ID }
func (m *Message) SetDocumentID(id string) { m.ID = id }

func (m *Message) ReadByUser(userID string) bool {
	for _, u := range m.ReadBy {
		if u == userID {
			return true
		}
	}
	return false
}
