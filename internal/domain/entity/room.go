package entity

import "time"

// Room is a one-off play session that players join directly.
type Room struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Sport       string    `json:"sport" firestore:"sport"`
	HostID      string    `json:"hostId" firestore:"hostId"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt" firestore:"scheduledAt"`
	Status      string    `json:"status" firestore:"status"` // "open", "full", "finished"

	MaxPlayers int `json:"maxPlayers" firestore:"maxPlayers"`

	// CurrentPlayers is denormalized from Players and must equal
	// len(Players) after every successful mutation.
	Players        []string `json:"players" firestore:"players"`
	CurrentPlayers int      `json:"currentPlayers" firestore:"currentPlayers"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (r *Room) DocumentID() string      { return r.ID }
func (r *Room) SetDocumentID(id string) { r.ID = id }

func (r *Room) IsFull() bool {
	return r.MaxPlayers > 0 && len(r.Players) >= r.MaxPlayers
}

func (r *Room) HasPlayer(userID string) bool {
	for _, p := range r.Players {
		if p == userID {
			return true
		}
	}
	return false
}
