package domain

import "time"

// Feedback types accepted from the game page
const (
	FeedbackTypeFeedback = "feedback"
	FeedbackTypeBug      = "bug"
)

// Feedback is an entry in the append-only feedback log
type Feedback struct {
	ID        int       `db:"id"`
	Type      string    `db:"type"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"timestamp"`
}

// ValidFeedbackType reports whether t is a known feedback type
func ValidFeedbackType(t string) bool {
	return t == FeedbackTypeFeedback || t == FeedbackTypeBug
}
