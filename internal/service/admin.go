package service

import (
	"context"
	"errors"
	"strings"

	"ereyga/internal/domain"
	apperrors "ereyga/internal/errors"
	"ereyga/internal/repository"

	"go.uber.org/zap"
)

// recentFeedbackLimit is how many feedback entries the admin console shows
const recentFeedbackLimit = 50

// AdminService curates the word list
type AdminService struct {
	wordRepo     repository.WordRepository
	feedbackRepo repository.FeedbackRepository
	logger       *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(wordRepo repository.WordRepository, feedbackRepo repository.FeedbackRepository, logger *zap.Logger) *AdminService {
	return &AdminService{
		wordRepo:     wordRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// AddWord validates and inserts a new word
func (s *AdminService) AddWord(ctx context.Context, input domain.NewWord) (int, error) {
	w := input.Normalize()
	if missing := w.MissingFields(); len(missing) > 0 {
		return 0, apperrors.ValidationError("Missing fields: " + strings.Join(missing, ", "))
	}

	id, err := s.wordRepo.CreateWord(ctx, w)
	if errors.Is(err, domain.ErrDuplicateWord) {
		return 0, apperrors.ConflictError("Word already exists").WithCause(err).WithField("word", w.Word)
	}
	if err != nil {
		return 0, apperrors.InternalError(err.Error(), err)
	}

	s.logger.Info("Word added", zap.Int("word_id", id), zap.String("word", w.Word))
	return id, nil
}

// UpdateWord changes the meaning and hint text of a word
func (s *AdminService) UpdateWord(ctx context.Context, id int, patch domain.WordPatch) error {
	if patch.IsEmpty() {
		return apperrors.ValidationError("No fields to update")
	}

	err := s.wordRepo.UpdateWord(ctx, id, patch)
	if err != nil {
		return wordError(err, id)
	}

	s.logger.Info("Word updated", zap.Int("word_id", id))
	return nil
}

// DeleteWord removes a word from the pool
func (s *AdminService) DeleteWord(ctx context.Context, id int) error {
	if err := s.wordRepo.DeleteWord(ctx, id); err != nil {
		return wordError(err, id)
	}

	s.logger.Info("Word deleted", zap.Int("word_id", id))
	return nil
}

// ListWords returns all words, newest first
func (s *AdminService) ListWords(ctx context.Context) ([]domain.Word, error) {
	words, err := s.wordRepo.ListWords(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err.Error(), err)
	}
	return words, nil
}

// RecentFeedback returns the latest feedback entries
func (s *AdminService) RecentFeedback(ctx context.Context) ([]domain.Feedback, error) {
	entries, err := s.feedbackRepo.ListRecentFeedback(ctx, recentFeedbackLimit)
	if err != nil {
		return nil, apperrors.InternalError(err.Error(), err)
	}
	return entries, nil
}

func wordError(err error, id int) error {
	if errors.Is(err, domain.ErrWordNotFound) {
		return apperrors.NotFoundError("Word not found").WithCause(err).WithField("word_id", id)
	}
	return apperrors.InternalError(err.Error(), err).WithField("word_id", id)
}
