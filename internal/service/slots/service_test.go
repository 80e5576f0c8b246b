package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/GSC-SlotService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func (f *fakeSlotRepo) ListByCenterAndDate(_ context.Context, centerID int64, date time.Time, status *domain.SlotStatus) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0)
	for _, s := range f.slots {
		if s.CenterID != centerID || !s.SlotDate.Equal(date) {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		result = append(result, s)
	}
	return result, nil
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

func (f *fakeSlotRepo) SetActive(_ context.Context, id int64, isActive bool, status domain.SlotStatus) error {
	s, ok := f.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.IsActive = isActive
	s.Status = status
	return nil
}

type fakeBookingRepo struct {
	counts map[int64]int
}

func (f *fakeBookingRepo) CountActiveBySlot(_ context.Context, slotID int64) (int, error) {
	return f.counts[slotID], nil
}

func daySlot(id int64, start string, load, capacity int) *domain.Slot {
	s := &domain.Slot{
		ID:          id,
		CenterID:    1,
		SlotDate:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString(start),
		Capacity:    capacity,
		CurrentLoad: load,
		IsActive:    true,
	}
	s.RecalculateStatus()
	return s
}

func TestSetActive(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 2, 5),
	}}
	svc := NewService(repo, &fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	resp, err := svc.SetActive(context.Background(), 10, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, string(domain.SlotStatusClosed), resp.Status)

	resp, err = svc.SetActive(context.Background(), 10, true)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, string(domain.SlotStatusAvailable), resp.Status)

	_, err = svc.SetActive(context.Background(), 999, true)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSetActive_FullSlotStaysFull(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 5, 5),
	}}
	svc := NewService(repo, &fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	_, err := svc.SetActive(context.Background(), 10, false)
	require.NoError(t, err)

	resp, err := svc.SetActive(context.Background(), 10, true)
	require.NoError(t, err)
	assert.Equal(t, string(domain.SlotStatusFull), resp.Status)
}

func TestDaySummary(t *testing.T) {
	closed := daySlot(13, "11:00", 0, 5)
	closed.IsActive = false
	closed.Status = domain.SlotStatusClosed

	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 4, 5), // час 9: 0.8 и 0.2, в среднем 0.5
		11: daySlot(11, "09:30", 1, 5),
		12: daySlot(12, "10:00", 5, 5), // час 10: full, 1.0 - пиковый
		13: closed,                     // час 11: закрытый пустой, 0.0 - свободный
	}}
	svc := NewService(repo, &fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	summary, err := svc.DaySummary(context.Background(), 1, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalSlots)
	assert.Equal(t, 2, summary.AvailableSlots)
	assert.Equal(t, 1, summary.FullSlots)
	assert.Equal(t, 1, summary.ClosedSlots)
	assert.Equal(t, 20, summary.TotalCapacity)
	assert.Equal(t, 10, summary.TotalLoad)
	assert.InDelta(t, 0.5, summary.AverageLoad, 1e-9)
	assert.InDelta(t, 50.0, summary.UtilizationPct, 1e-9)

	assert.Equal(t, []string{"10:00"}, summary.PeakHours)
	assert.Equal(t, []string{"11:00"}, summary.QuietHours)
}

func TestDaySummary_HourAveragesOutliers(t *testing.T) {
	// Загруженный и свободный слоты одного часа уравновешивают друг друга:
	// час со средней загрузкой 0.5 не пиковый и не свободный
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 4, 5), // 0.8
		11: daySlot(11, "09:30", 1, 5), // 0.2
	}}
	svc := NewService(repo, &fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	summary, err := svc.DaySummary(context.Background(), 1, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Empty(t, summary.PeakHours)
	assert.Empty(t, summary.QuietHours)
	assert.InDelta(t, 0.5, summary.AverageLoad, 1e-9)
}

func TestDaySummary_HourLabels(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 5, 5),
		11: daySlot(11, "14:00", 0, 5),
	}}
	svc := NewService(repo, &fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	summary, err := svc.DaySummary(context.Background(), 1, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Метка часа без ведущего нуля
	assert.Equal(t, []string{"9:00"}, summary.PeakHours)
	assert.Equal(t, []string{"14:00"}, summary.QuietHours)
}

func TestDaySummary_InvalidInput(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	_, err := svc.DaySummary(context.Background(), 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.DaySummary(context.Background(), 1, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReconcileLoad(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 5, 5),
	}}
	bookings := &fakeBookingRepo{counts: map[int64]int{10: 2}}
	svc := NewService(repo, bookings, fakeTxManager{}, nopLogger{})

	require.NoError(t, svc.ReconcileLoad(context.Background(), 10))

	slot := repo.slots[10]
	assert.Equal(t, 2, slot.CurrentLoad)
	assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
}

func TestReconcileLoad_NoChange(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: daySlot(10, "09:00", 2, 5),
	}}
	bookings := &fakeBookingRepo{counts: map[int64]int{10: 2}}
	svc := NewService(repo, bookings, fakeTxManager{}, nopLogger{})

	require.NoError(t, svc.ReconcileLoad(context.Background(), 10))
	assert.Equal(t, 2, repo.slots[10].CurrentLoad)
}
