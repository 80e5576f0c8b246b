package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	centerRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/center"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeSlotRepo struct {
	inserted [][]*domain.Slot
	// имитация ON CONFLICT DO NOTHING: ключи уже существующих слотов
	existing map[string]struct{}
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{existing: make(map[string]struct{})}
}

func slotKey(s *domain.Slot) string {
	return s.SlotDate.Format(domain.DateFormat) + "/" + s.StartTime.String()
}

func (f *fakeSlotRepo) InsertBatch(_ context.Context, slots []*domain.Slot) (int64, error) {
	f.inserted = append(f.inserted, slots)

	var created int64
	for _, s := range slots {
		key := slotKey(s)
		if _, ok := f.existing[key]; ok {
			continue
		}
		f.existing[key] = struct{}{}
		created++
	}
	return created, nil
}

type fakeCenterRepo struct {
	centers map[int64]*domain.ServiceCenter
}

func (f *fakeCenterRepo) GetByID(_ context.Context, id int64) (*domain.ServiceCenter, error) {
	c, ok := f.centers[id]
	if !ok {
		return nil, centerRepo.ErrCenterNotFound
	}
	return c, nil
}

func (f *fakeCenterRepo) ListActive(_ context.Context) ([]*domain.ServiceCenter, error) {
	result := make([]*domain.ServiceCenter, 0)
	for _, c := range f.centers {
		if c.IsActive {
			result = append(result, c)
		}
	}
	return result, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func TestExecute_GeneratesForWeek(t *testing.T) {
	center := testCenter()
	slotRepo := newFakeSlotRepo()
	centers := &fakeCenterRepo{centers: map[int64]*domain.ServiceCenter{1: center}}

	uc := NewUseCase(slotRepo, centers, nopLogger{})
	// 2026-03-16 - понедельник
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 16, 0, 5, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{CenterID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.CenterID)
	assert.Equal(t, domain.DefaultGenerationDays, resp.DaysCovered)
	// пн-пт по 18 слотов, сб-вс пропущены
	assert.Equal(t, int64(5*18), resp.SlotsCreated)
}

func TestExecute_IdempotentRerun(t *testing.T) {
	center := testCenter()
	slotRepo := newFakeSlotRepo()
	centers := &fakeCenterRepo{centers: map[int64]*domain.ServiceCenter{1: center}}

	uc := NewUseCase(slotRepo, centers, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 16, 0, 5, 0, 0, time.UTC)}

	first, err := uc.Execute(context.Background(), &Request{CenterID: 1})
	require.NoError(t, err)
	require.NotZero(t, first.SlotsCreated)

	// Повторный запуск не создает дубликатов
	second, err := uc.Execute(context.Background(), &Request{CenterID: 1})
	require.NoError(t, err)
	assert.Zero(t, second.SlotsCreated)
}

func TestExecute_CenterNotFound(t *testing.T) {
	uc := NewUseCase(newFakeSlotRepo(), &fakeCenterRepo{centers: map[int64]*domain.ServiceCenter{}}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CenterID: 42})
	assert.ErrorIs(t, err, ErrCenterNotFound)
}

func TestExecute_CenterInactive(t *testing.T) {
	center := testCenter()
	center.IsActive = false

	uc := NewUseCase(newFakeSlotRepo(), &fakeCenterRepo{centers: map[int64]*domain.ServiceCenter{1: center}}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CenterID: 1})
	assert.ErrorIs(t, err, ErrCenterInactive)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(newFakeSlotRepo(), &fakeCenterRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CenterID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CenterID: 1, Days: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateForAllCenters(t *testing.T) {
	active := testCenter()
	inactive := testCenter()
	inactive.ID = 2
	inactive.IsActive = false

	slotRepo := newFakeSlotRepo()
	centers := &fakeCenterRepo{centers: map[int64]*domain.ServiceCenter{1: active, 2: inactive}}

	uc := NewUseCase(slotRepo, centers, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 16, 0, 5, 0, 0, time.UTC)}

	created, err := uc.GenerateForAllCenters(context.Background(), 1)
	require.NoError(t, err)

	// Только активный центр, понедельник, 18 слотов
	assert.Equal(t, int64(18), created)
}
