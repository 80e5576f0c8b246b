package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	bookingRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/user"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager выполняет функцию напрямую, без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeUserRepo struct {
	users          map[int64]*domain.User
	penaltyCleared []int64
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ClearPenalty(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.IsPenalized = false
	u.PenaltyEndDate = nil
	f.penaltyCleared = append(f.penaltyCleared, id)
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

type fakeBookingRepo struct {
	nextID   int64
	created  []*domain.Booking
	active   map[int64]*domain.Booking // key: slotID активного бронирования пользователя
	dayCount int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, active: make(map[int64]*domain.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	copied := *booking
	copied.ID = f.nextID
	f.nextID++
	f.created = append(f.created, &copied)
	f.active[copied.SlotID] = &copied
	return &copied, nil
}

func (f *fakeBookingRepo) GetActiveByUserAndSlot(_ context.Context, userID, slotID int64) (*domain.Booking, error) {
	b, ok := f.active[slotID]
	if !ok || b.UserID != userID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) CountActiveCreatedBetween(_ context.Context, userID int64, from, to time.Time) (int, error) {
	return f.dayCount, nil
}

type fixture struct {
	uc       *UseCase
	users    *fakeUserRepo
	slots    *fakeSlotRepo
	bookings *fakeBookingRepo
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Иван"},
	}}
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: {
			ID:          10,
			CenterID:    1,
			SlotDate:    time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
			StartTime:   "09:00",
			EndTime:     "09:30",
			Capacity:    2,
			CurrentLoad: 0,
			Status:      domain.SlotStatusAvailable,
			IsActive:    true,
		},
	}}
	bookings := newFakeBookingRepo()

	uc := NewUseCase(bookings, slots, users, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}

	return &fixture{uc: uc, users: users, slots: slots, bookings: bookings, now: now}
}

func validRequest() *Request {
	return &Request{
		UserID:      1,
		SlotID:      10,
		ServiceName: "Замена масла",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.BookingNumber, "GSC-"), "booking number: %s", resp.BookingNumber)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, int64(10), resp.SlotID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, string(domain.PriorityNormal), resp.Priority)

	// Загрузка слота увеличена
	slot := f.slots.slots[10]
	assert.Equal(t, 1, slot.CurrentLoad)
	assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
}

func TestExecute_LastSeatFlipsSlotToFull(t *testing.T) {
	f := newFixture()
	f.slots.slots[10].CurrentLoad = 1 // ёмкость 2, остаётся одно место

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	slot := f.slots.slots[10]
	assert.Equal(t, 2, slot.CurrentLoad)
	assert.Equal(t, domain.SlotStatusFull, slot.Status)
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture()
	f.slots.slots[10].CurrentLoad = 2
	f.slots.slots[10].Status = domain.SlotStatusFull

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_SlotClosed(t *testing.T) {
	f := newFixture()
	f.slots.slots[10].IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.SlotID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.UserID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Len(t, f.bookings.created, 1)
}

func TestExecute_DailyLimitExceeded(t *testing.T) {
	f := newFixture()
	f.bookings.dayCount = domain.MaxBookingsPerDay

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
}

func TestExecute_PenalizedUserRejected(t *testing.T) {
	f := newFixture()
	end := f.now.AddDate(0, 0, 3)
	f.users.users[1].IsPenalized = true
	f.users.users[1].PenaltyEndDate = &end

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserPenalized)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_ExpiredPenaltyClearedLazily(t *testing.T) {
	f := newFixture()
	end := f.now.AddDate(0, 0, -1)
	f.users.users[1].IsPenalized = true
	f.users.users[1].PenaltyEndDate = &end

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, []int64{1}, f.users.penaltyCleared)
	assert.False(t, f.users.users[1].IsPenalized)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{UserID: 0, SlotID: 10, ServiceName: "Мойка"}},
		{"zero slot", &Request{UserID: 1, SlotID: 0, ServiceName: "Мойка"}},
		{"empty service", &Request{UserID: 1, SlotID: 10, ServiceName: ""}},
		{"bad priority", &Request{UserID: 1, SlotID: 10, ServiceName: "Мойка", Priority: "vip"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerateBookingNumber(t *testing.T) {
	now := time.Unix(1735689600, 0)

	first := generateBookingNumber(now)
	second := generateBookingNumber(now)

	assert.True(t, strings.HasPrefix(first, "GSC-1735689600-"))
	assert.NotEqual(t, first, second)
}
