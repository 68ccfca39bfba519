package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"ereyga/internal/captcha"
	"ereyga/internal/domain"
	apperrors "ereyga/internal/errors"
	"ereyga/internal/metrics"
	"ereyga/internal/repository"

	"go.uber.org/zap"
)

const maxFeedbackLength = 2000

// Verifier checks bot-mitigation tokens
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*captcha.Result, error)
}

// Notifier is told about accepted feedback
type Notifier interface {
	NotifyFeedback(ctx context.Context, fb domain.Feedback) error
}

// FeedbackRequest is a submission from the game page
type FeedbackRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Token   string `json:"hcaptcha_token"`
}

// FeedbackService accepts feedback behind captcha verification
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	verifier     Verifier
	notifier     Notifier
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	verifier Verifier,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		verifier:     verifier,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
	}
}

// Submit validates, verifies and stores a feedback entry
func (s *FeedbackService) Submit(ctx context.Context, req FeedbackRequest, remoteIP string) error {
	fbType := strings.TrimSpace(req.Type)
	message := strings.TrimSpace(req.Message)

	if fbType == "" || message == "" {
		return apperrors.ValidationError("Missing fields")
	}
	if !domain.ValidFeedbackType(fbType) {
		return apperrors.ValidationError("Invalid feedback type").WithField("type", fbType)
	}
	if utf8.RuneCountInString(message) > maxFeedbackLength {
		return apperrors.ValidationError("Message too long")
	}
	if req.Token == "" {
		return apperrors.ValidationError("Missing hCaptcha token")
	}

	result, err := s.verifier.Verify(ctx, req.Token, remoteIP)
	if errors.Is(err, captcha.ErrNotConfigured) {
		return apperrors.InternalError("Server captcha secret not configured", err)
	}
	if err != nil {
		s.metrics.CaptchaFailures.WithLabelValues("error").Inc()
		return apperrors.ExternalError("Captcha verification error", err)
	}
	if !result.Success {
		s.metrics.CaptchaFailures.WithLabelValues("rejected").Inc()
		return apperrors.ValidationError("Captcha failed").WithField("error_codes", result.ErrorCodes)
	}

	if err := s.feedbackRepo.CreateFeedback(ctx, fbType, message); err != nil {
		return apperrors.InternalError("DB insert failed: "+err.Error(), err)
	}
	s.metrics.FeedbackTotal.WithLabelValues(fbType).Inc()
	s.logger.Info("Feedback stored", zap.String("type", fbType))

	// Notification is best effort
	if err := s.notifier.NotifyFeedback(ctx, domain.Feedback{Type: fbType, Message: message}); err != nil {
		s.logger.Warn("Failed to notify about feedback", zap.Error(err))
	}

	return nil
}
