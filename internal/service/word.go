package service

import (
	"context"
	"errors"

	"ereyga/internal/domain"
	apperrors "ereyga/internal/errors"
	"ereyga/internal/metrics"
	"ereyga/internal/repository"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// WordService serves the word of the day
type WordService struct {
	wordRepo repository.WordRepository
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, clock clockwork.Clock, m *metrics.Metrics, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo: wordRepo,
		clock:    clock,
		metrics:  m,
		logger:   logger,
	}
}

// DailyWord claims today's word from the rotation.
// Every call marks a word used, so two calls on the same day return different words.
func (s *WordService) DailyWord(ctx context.Context) (*domain.DailyWord, error) {
	day := domain.DayNumber(s.clock.Now())

	rotation, err := s.wordRepo.ClaimDailyWord(ctx, day)
	if errors.Is(err, domain.ErrNoWords) {
		return nil, apperrors.NotFoundError("No words available").WithCause(err)
	}
	if err != nil {
		s.metrics.RotationErrors.Inc()
		return nil, apperrors.InternalError(err.Error(), err).WithField("day_number", day)
	}

	s.metrics.WordsIssued.Inc()
	s.metrics.PoolSize.Set(float64(rotation.PoolSize))
	if rotation.EpochReset {
		s.metrics.EpochResets.Inc()
		s.logger.Info("Word pool exhausted, started new epoch", zap.Int("day_number", day))
	}

	s.logger.Info("Daily word issued",
		zap.Int("day_number", day),
		zap.Int("word_id", rotation.Word.ID),
		zap.Int("offset", rotation.Offset),
		zap.Int("pool_size", rotation.PoolSize),
	)

	public := rotation.Word.Public()
	return &public, nil
}
