package entity

import "time"

// AIInsight is a generated recommendation or activity summary shown on the
// home feed. Documents are written by the insight generator and read-only
// for clients.
type AIInsight struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"userId" firestore:"userId"`
	Type        string    `json:"type" firestore:"type"` // "partner_suggestion", "activity_summary", "campaign_highlight"
	Title       string    `json:"title" firestore:"title"`
	Body        string    `json:"body" firestore:"body"`
	Source      string    `json:"source,omitempty" firestore:"source,omitempty"`
	GeneratedAt time.Time `json:"generatedAt" firestore:"generatedAt"`
}

func (i *AIInsight) DocumentID() string      { return i.ID }
func (i *AIInsight) SetDocumentID(id string) { i.ID = id }
