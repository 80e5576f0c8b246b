package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_PenaltyChecks(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 3)
	past := now.AddDate(0, 0, -1)

	active := &User{IsPenalized: true, PenaltyEndDate: &future}
	assert.True(t, active.IsCurrentlyPenalized(now))
	assert.False(t, active.PenaltyExpired(now))

	expired := &User{IsPenalized: true, PenaltyEndDate: &past}
	assert.False(t, expired.IsCurrentlyPenalized(now))
	assert.True(t, expired.PenaltyExpired(now))

	clean := &User{IsPenalized: false}
	assert.False(t, clean.IsCurrentlyPenalized(now))
	assert.False(t, clean.PenaltyExpired(now))

	// Штраф без срока окончания трактуется как истёкший
	noEnd := &User{IsPenalized: true, PenaltyEndDate: nil}
	assert.False(t, noEnd.IsCurrentlyPenalized(now))
	assert.True(t, noEnd.PenaltyExpired(now))
}
