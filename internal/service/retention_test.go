package service

import (
	"context"
	"fmt"
	"testing"

	"ereyga/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRetentionService_CleanupOldFeedback(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockFeedbackRepository)
			mockRepo.On("DeleteFeedbackOlderThan", mock.Anything, 60).Return(int64(3), tt.mockError)

			service := NewRetentionService(mockRepo, 60, testutil.NewTestLogger())

			err := service.CleanupOldFeedback(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRetentionService_Disabled(t *testing.T) {
	mockRepo := new(testutil.MockFeedbackRepository)
	service := NewRetentionService(mockRepo, 0, testutil.NewTestLogger())

	assert.False(t, service.Enabled())
	assert.NoError(t, service.CleanupOldFeedback(context.Background()))
	mockRepo.AssertNotCalled(t, "DeleteFeedbackOlderThan", mock.Anything, mock.Anything)
}
