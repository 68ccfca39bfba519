package domain

import "time"

// Epoch is day zero of the rotation calendar
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DayNumber returns the number of whole UTC calendar days between Epoch and t.
// Days before the epoch are negative.
func DayNumber(t time.Time) int {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(Epoch) / (24 * time.Hour))
}

// RotationOffset maps a day onto a pool of size n.
// The result is always in [0, n), also for negative days.
func RotationOffset(day, n int) int {
	if n <= 0 {
		return 0
	}
	offset := day % n
	if offset < 0 {
		offset += n
	}
	return offset
}

// Rotation describes a single word selection
type Rotation struct {
	Word       Word
	DayNumber  int
	Offset     int
	PoolSize   int
	EpochReset bool
}
