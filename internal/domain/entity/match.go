package entity

import "time"

// Swipe is one user's like/pass decision on another, stored under the
// swiping user's swipes subcollection keyed by the target user id.
type Swipe struct {
	ID         string    `json:"id" firestore:"id"`
	FromUserID string    `json:"fromUserId" firestore:"fromUserId"`
	ToUserID   string    `json:"toUserId" firestore:"toUserId"`
	Action     string    `json:"action" firestore:"action"` // "like", "pass"
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

const (
	SwipeLike = "like"
	SwipePass = "pass"
)

func (s *Swipe) DocumentID() string      { return s.ID }
func (s *Swipe) SetDocumentID(id string) { s.ID = id }

// Match pairs two users who liked each other. UserA is always the
// lexicographically smaller id so a pair maps to exactly one document.
type Match struct {
	ID        string    `json:"id" firestore:"id"`
	UserA     string    `json:"userA" firestore:"userA"`
	UserB     string    `json:"userB" firestore:"userB"`
	Sport     string    `json:"sport,omitempty" firestore:"sport,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

func (m *Match) DocumentID() string      { return m.ID }
func (m *Match) SetDocumentID(id string) { m.ID = id }

func (m *Match) Partner(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}
