package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	bookingRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/user"
	"github.com/m04kA/GSC-SlotService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) SetCheckedIn(_ context.Context, id int64, checkInTime time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCheckedIn
	b.CheckInTime = &checkInTime
	return nil
}

func (f *fakeBookingRepo) SetCompleted(_ context.Context, id int64, completionTime time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCompleted
	b.CompletionTime = &completionTime
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSlotRepo) UpdateLoad(_ context.Context, id int64, currentLoad int, status domain.SlotStatus) error {
	s, ok := f.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.CurrentLoad = currentLoad
	s.Status = status
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdatePenalty(_ context.Context, id int64, noShowCount int, isPenalized bool, penaltyEndDate *time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.NoShowCount = noShowCount
	u.IsPenalized = isPenalized
	u.PenaltyEndDate = penaltyEndDate
	return nil
}

type fixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	slots    *fakeSlotRepo
	users    *fakeUserRepo
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:            1,
			BookingNumber: "GSC-1-aaaa",
			UserID:        100,
			CenterID:      1,
			SlotID:        10,
			ServiceName:   "Шиномонтаж",
			Status:        domain.StatusBooked,
			Priority:      domain.PriorityNormal,
		},
	}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: {
			ID:          10,
			CenterID:    1,
			SlotDate:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			StartTime:   "09:00",
			EndTime:     "09:30",
			Capacity:    5,
			CurrentLoad: 3,
			Status:      domain.SlotStatusAvailable,
			IsActive:    true,
		},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		100: {ID: 100, Name: "Пётр"},
	}}

	svc := NewService(bookings, slots, users, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTime{now: now}

	return &fixture{svc: svc, bookings: bookings, slots: slots, users: users, now: now}
}

func TestGetByID_OwnerOnly(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = f.svc.GetByID(context.Background(), 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), 99, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[2] = &domain.Booking{ID: 2, UserID: 100, SlotID: 10, Status: domain.StatusCancelled}

	all, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	cancelled := "cancelled"
	filtered, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, filtered.Bookings, 1)
	assert.Equal(t, int64(2), filtered.Bookings[0].ID)

	bad := "pending"
	_, err = f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCheckIn(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CheckIn(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
	require.NotNil(t, resp.CheckInTime)

	// Повторный check-in невозможен
	_, err = f.svc.CheckIn(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestComplete_RequiresCheckIn(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Complete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.svc.CheckIn(context.Background(), 1)
	require.NoError(t, err)

	resp, err := f.svc.Complete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	// Завершение не освобождает место: услуга была оказана
	assert.Equal(t, 3, f.slots.slots[10].CurrentLoad)
}

func TestCancel_ReleasesSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          1,
		UserID:             100,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "передумал", *resp.CancellationReason)

	assert.Equal(t, 2, f.slots.slots[10].CurrentLoad)
}

func TestCancel_AccessDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          1,
		UserID:             200,
		CancellationReason: "чужое",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 3, f.slots.slots[10].CurrentLoad)
}

func TestCancel_TerminalStatus(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[1].Status = domain.StatusCompleted

	_, err := f.svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          1,
		UserID:             100,
		CancellationReason: "поздно",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_FullSlotBecomesAvailable(t *testing.T) {
	f := newFixture()
	f.slots.slots[10].CurrentLoad = 5
	f.slots.slots[10].Status = domain.SlotStatusFull

	_, err := f.svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          1,
		UserID:             100,
		CancellationReason: "не приеду",
	})
	require.NoError(t, err)

	slot := f.slots.slots[10]
	assert.Equal(t, 4, slot.CurrentLoad)
	assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
}

func TestMarkNoShow_ReleasesSlotAndCountsNoShow(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.MarkNoShow(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)

	assert.Equal(t, 2, f.slots.slots[10].CurrentLoad)
	assert.Equal(t, 1, f.users.users[100].NoShowCount)
	assert.False(t, f.users.users[100].IsPenalized)
}

func TestMarkNoShow_ThresholdPenalizes(t *testing.T) {
	f := newFixture()
	f.users.users[100].NoShowCount = domain.NoShowPenaltyThreshold - 1

	_, err := f.svc.MarkNoShow(context.Background(), 1)
	require.NoError(t, err)

	user := f.users.users[100]
	assert.Equal(t, domain.NoShowPenaltyThreshold, user.NoShowCount)
	assert.True(t, user.IsPenalized)
	require.NotNil(t, user.PenaltyEndDate)
	assert.Equal(t, f.now.AddDate(0, 0, domain.PenaltyDurationDays), *user.PenaltyEndDate)
}

func TestMarkNoShow_TerminalStatus(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[1].Status = domain.StatusCancelled

	_, err := f.svc.MarkNoShow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, f.users.users[100].NoShowCount)
}

func TestMarkNoShow_CheckedInNotEligible(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[1].Status = domain.StatusCheckedIn

	_, err := f.svc.MarkNoShow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReleaseSlot_MissingSlotSkipped(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[1].SlotID = 999

	// Слот удален retention-очисткой, отмена всё равно проходит
	resp, err := f.svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          1,
		UserID:             100,
		CancellationReason: "слот удален",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestReleaseSlot_LoadFlooredAtZero(t *testing.T) {
	f := newFixture()
	f.slots.slots[10].CurrentLoad = 0

	_, err := f.svc.Cancel(context.Background(), &models.CancelBookingRequest{
		BookingID:          1,
		UserID:             100,
		CancellationReason: "рассинхрон",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.slots.slots[10].CurrentLoad)
}
