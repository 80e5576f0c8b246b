package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailySchedule_Next(t *testing.T) {
	s := dailyAt(2, 0)

	// До целевого времени - запуск сегодня
	after := time.Date(2026, 3, 16, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC), s.next(after))

	// После целевого времени - запуск завтра
	after = time.Date(2026, 3, 16, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 17, 2, 0, 0, 0, time.UTC), s.next(after))

	// Ровно в целевое время - тоже завтра, запуск строго после after
	after = time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 17, 2, 0, 0, 0, time.UTC), s.next(after))
}

func TestDailySchedule_Midnight(t *testing.T) {
	s := dailyAt(0, 0)

	after := time.Date(2026, 3, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), s.next(after))
}

func TestIntervalSchedule_Next(t *testing.T) {
	s := every(15 * time.Minute)

	after := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 10, 15, 0, 0, time.UTC), s.next(after))
}

func TestSchedule_String(t *testing.T) {
	assert.Equal(t, "daily at 02:00", dailyAt(2, 0).String())
	assert.Equal(t, "every 15m0s", every(15*time.Minute).String())
}
