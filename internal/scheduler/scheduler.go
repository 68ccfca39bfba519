package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const (
	cleanupInterval = 24 * time.Hour
	cleanupTimeout  = time.Minute
)

// Cleaner prunes stale data
type Cleaner interface {
	CleanupOldFeedback(ctx context.Context) error
}

// Scheduler runs maintenance jobs in the background
type Scheduler struct {
	scheduler *gocron.Scheduler
	cleaner   Cleaner
	logger    *zap.Logger
}

// New creates a scheduler running in UTC
func New(cleaner Cleaner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cleaner:   cleaner,
		logger:    logger,
	}
}

// Start schedules the cleanup job, which also runs once right away
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(cleanupInterval).SingletonMode().Do(s.runCleanup); err != nil {
		return fmt.Errorf("schedule feedback cleanup: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Cleanup job stopped")
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	s.logger.Info("Running scheduled cleanup")
	if err := s.cleaner.CleanupOldFeedback(ctx); err != nil {
		s.logger.Error("Failed to run scheduled cleanup", zap.Error(err))
	}
}
