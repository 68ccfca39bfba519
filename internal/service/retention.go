package service

import (
	"context"

	"ereyga/internal/repository"

	"go.uber.org/zap"
)

// RetentionService prunes the feedback log
type RetentionService struct {
	feedbackRepo  repository.FeedbackRepository
	retentionDays int
	logger        *zap.Logger
}

// NewRetentionService creates a new retention service. retentionDays of 0 disables pruning.
func NewRetentionService(feedbackRepo repository.FeedbackRepository, retentionDays int, logger *zap.Logger) *RetentionService {
	return &RetentionService{
		feedbackRepo:  feedbackRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Enabled reports whether pruning is configured
func (s *RetentionService) Enabled() bool {
	return s.retentionDays > 0
}

// CleanupOldFeedback removes feedback older than the retention period
func (s *RetentionService) CleanupOldFeedback(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	s.logger.Info("Starting cleanup of old feedback", zap.Int("retention_days", s.retentionDays))

	deleted, err := s.feedbackRepo.DeleteFeedbackOlderThan(ctx, s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old feedback", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("deleted", deleted))
	return nil
}
