package testutil

import (
	"time"

	"ereyga/internal/domain"
	"ereyga/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestMetrics registers collectors on a private registry
func NewTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// NewClockAtDay returns a fake clock at noon UTC on the given rotation day
func NewClockAtDay(day int) clockwork.FakeClock {
	return clockwork.NewFakeClockAt(domain.Epoch.AddDate(0, 0, day).Add(12 * time.Hour))
}

// NewTestWord creates a test word
func NewTestWord(id int, word string) domain.Word {
	return domain.Word{
		ID:        id,
		Word:      word,
		MeaningEN: word + " (en)",
		MeaningSO: word + " (so)",
		HintEN:    "hint for " + word,
		HintSO:    "tilmaan " + word,
	}
}

// NewTestRotation wraps a word in a rotation result
func NewTestRotation(w domain.Word, day, offset, poolSize int, reset bool) *domain.Rotation {
	w.Used = true
	return &domain.Rotation{
		Word:       w,
		DayNumber:  day,
		Offset:     offset,
		PoolSize:   poolSize,
		EpochReset: reset,
	}
}
