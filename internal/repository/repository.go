package repository

import (
	"context"

	"ereyga/internal/domain"
)

// WordRepository defines word data operations
type WordRepository interface {
	// ClaimDailyWord selects the word for dayNumber and marks it used atomically
	ClaimDailyWord(ctx context.Context, dayNumber int) (*domain.Rotation, error)
	CreateWord(ctx context.Context, w domain.NewWord) (int, error)
	UpdateWord(ctx context.Context, id int, patch domain.WordPatch) error
	DeleteWord(ctx context.Context, id int) error
	ListWords(ctx context.Context) ([]domain.Word, error)
}

// FeedbackRepository defines feedback log operations
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedbackType, message string) error
	ListRecentFeedback(ctx context.Context, limit int) ([]domain.Feedback, error)
	DeleteFeedbackOlderThan(ctx context.Context, days int) (int64, error)
}
