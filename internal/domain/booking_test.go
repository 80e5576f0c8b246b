package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StatusGuards(t *testing.T) {
	cases := []struct {
		status        BookingStatus
		canCheckIn    bool
		canComplete   bool
		canCancel     bool
		canMarkNoShow bool
		isTerminal    bool
	}{
		{StatusBooked, true, false, true, true, false},
		{StatusConfirmed, true, false, true, true, false},
		{StatusCheckedIn, false, true, true, false, false},
		{StatusCompleted, false, false, false, false, true},
		{StatusCancelled, false, false, false, false, true},
		{StatusNoShow, false, false, false, false, true},
	}

	for _, tt := range cases {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.canCheckIn, b.CanCheckIn(), "CanCheckIn")
			assert.Equal(t, tt.canComplete, b.CanComplete(), "CanComplete")
			assert.Equal(t, tt.canCancel, b.CanBeCancelled(), "CanBeCancelled")
			assert.Equal(t, tt.canMarkNoShow, b.CanMarkNoShow(), "CanMarkNoShow")
			assert.Equal(t, tt.isTerminal, b.IsTerminal(), "IsTerminal")
			assert.Equal(t, !tt.isTerminal, b.IsActive(), "IsActive")
		})
	}
}

func TestBookingPriority_IsValid(t *testing.T) {
	assert.True(t, PriorityNormal.IsValid())
	assert.True(t, PriorityEmergency.IsValid())
	assert.False(t, BookingPriority("vip").IsValid())
	assert.False(t, BookingPriority("").IsValid())
}

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, StatusBooked.IsValid())
	assert.True(t, StatusNoShow.IsValid())
	assert.False(t, BookingStatus("pending").IsValid())
}
