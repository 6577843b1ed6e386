package entity

import "time"

// Campaign is an organized event (tournament, fun run, charity match) users
// sign up for.
type Campaign struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Sport       string    `json:"sport" firestore:"sport"`
	CreatorID   string    `json:"creatorId" firestore:"creatorId"`
	BannerURL   string    `json:"bannerURL,omitempty" firestore:"bannerURL,omitempty"`
	StartDate   time.Time `json:"startDate" firestore:"startDate"`
	EndDate     time.Time `json:"endDate" firestore:"endDate"`
	Status      string    `json:"status" firestore:"status"` // "upcoming", "active", "closed"

	// ParticipantCount is denormalized from Participants and must equal
	// len(Participants) after every successful mutation.
	Participants     []string `json:"participants" firestore:"participants"`
	ParticipantCount int      `json:"participantCount" firestore:"participantCount"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (c *Campaign) DocumentID() string      { return c.ID }
func (c *Campaign) SetDocumentID(id string) { c.ID = id }

func (c *Campaign) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
