package testutil

import (
	"context"

	"ereyga/internal/captcha"
	"ereyga/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) ClaimDailyWord(ctx context.Context, dayNumber int) (*domain.Rotation, error) {
	args := m.Called(ctx, dayNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rotation), args.Error(1)
}

func (m *MockWordRepository) CreateWord(ctx context.Context, w domain.NewWord) (int, error) {
	args := m.Called(ctx, w)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) UpdateWord(ctx context.Context, id int, patch domain.WordPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockWordRepository) DeleteWord(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepository) ListWords(ctx context.Context) ([]domain.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

// MockFeedbackRepository is a mock for FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) CreateFeedback(ctx context.Context, feedbackType, message string) error {
	args := m.Called(ctx, feedbackType, message)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListRecentFeedback(ctx context.Context, limit int) ([]domain.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) DeleteFeedbackOlderThan(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

// MockVerifier is a mock captcha verifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token, remoteIP string) (*captcha.Result, error) {
	args := m.Called(ctx, token, remoteIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captcha.Result), args.Error(1)
}

// MockNotifier is a mock feedback notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyFeedback(ctx context.Context, fb domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}
