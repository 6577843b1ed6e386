package entity

import "time"

type Community struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Sport       string `json:"sport" firestore:"sport"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	CreatorID   string `json:"creatorId" firestore:"creatorId"`
	PhotoURL    string `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`

	// MemberCount is denormalized from Members and must equal
	// len(Members) after every successful mutation.
	Members     []string `json:"members" firestore:"members"`
	MemberCount int      `json:"memberCount" firestore:"memberCount"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (c *Community) DocumentID() string      { return c.ID }
func (c *Community) SetDocumentID(id string) { c.ID = id }

func (c *Community) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}
