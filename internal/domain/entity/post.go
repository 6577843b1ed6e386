package entity

import "time"

// Post lives in the posts subcollection of its community. Author name and
// photo are denormalized at write time so feeds never join against users.
type Post struct {
	ID          string `json:"id" firestore:"id"`
	CommunityID string `json:"communityId" firestore:"communityId"`

	AuthorID       string `json:"authorId" firestore:"authorId"`
	AuthorName     string `json:"authorName" firestore:"authorName"`
	AuthorPhotoURL string `json:"authorPhotoURL,omitempty" firestore:"authorPhotoURL,omitempty"`

	Content  string `json:"content" firestore:"content"`
	ImageURL string `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`

	// Likes is denormalized from LikedBy and must equal len(LikedBy)
	// after every successful mutation; it never goes below zero.
	Likes        int      `json:"likes" firestore:"likes"`
	LikedBy      []string `json:"likedBy" firestore:"likedBy"`
	CommentCount int      `json:"commentCount" firestore:"commentCount"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

func (p *Post) DocumentID() string      { return p.ID }
func (p *Post) SetDocumentID(id string) { p.ID = id }

func (p *Post) LikedByUser(userID string) bool {
	for _, u := range p.LikedBy {
		if u == userID {
			return true
		}
	}
	return false
}

type Comment struct {
	ID         string    `json:"id" firestore:"id"`
	PostID     string    `json:"postId" firestore:"postId"`
	AuthorID   string    `json:"authorId" firestore:"authorId"`
	AuthorName string    `json:"authorName" firestore:"authorName"`
	Content    string    `json:"content" firestore:"content"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

func (c *Comment) DocumentID() string      { return c.ID }
func (c *Comment) SetDocumentID(id string) { c.ID = id }
