package postgres

import (
	"context"

	"ereyga/internal/domain"

	"github.com/jmoiron/sqlx"
)

// FeedbackRepo implements repository.FeedbackRepository
type FeedbackRepo struct {
	db *sqlx.DB
}

// NewFeedbackRepo creates a new feedback repository
func NewFeedbackRepo(db *sqlx.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// CreateFeedback appends an entry to the feedback log
func (r *FeedbackRepo) CreateFeedback(ctx context.Context, feedbackType, message string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO feedback (type, message) VALUES ($1, $2)`, feedbackType, message)
	return err
}

// ListRecentFeedback returns the newest entries first
func (r *FeedbackRepo) ListRecentFeedback(ctx context.Context, limit int) ([]domain.Feedback, error) {
	var entries []domain.Feedback
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, type, message, timestamp
		FROM feedback
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	return entries, err
}

// DeleteFeedbackOlderThan removes entries older than days and returns how many were deleted
func (r *FeedbackRepo) DeleteFeedbackOlderThan(ctx context.Context, days int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM feedback
		WHERE timestamp < NOW() - INTERVAL '1 day' * $1
	`, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
