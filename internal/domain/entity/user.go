package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	PhotoURL string `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	City     string `json:"city,omitempty" firestore:"city,omitempty"`

	FavoriteSports []string `json:"favoriteSports" firestore:"favoriteSports"`
	SkillLevel     string   `json:"skillLevel,omitempty" firestore:"skillLevel,omitempty"` // "beginner", "intermediate", "advanced"

	// Denormalized membership lists, kept in the same batch as the
	// community/room side of each join.
	JoinedCommunities []string `json:"joinedCommunities" firestore:"joinedCommunities"`
	JoinedRooms       []string `json:"joinedRooms" firestore:"joinedRooms"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (u *User) DocumentID() string      { return u.ID }
func (u *User) SetDocumentID(id string) { u.ID = id }
