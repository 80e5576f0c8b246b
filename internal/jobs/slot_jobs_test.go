package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

type fakeGenerator struct {
	days    int
	created int64
	err     error
}

func (f *fakeGenerator) GenerateForAllCenters(_ context.Context, days int) (int64, error) {
	f.days = days
	return f.created, f.err
}

func TestRunGeneration(t *testing.T) {
	gen := &fakeGenerator{created: 90}

	jobs := NewSlotJobs(gen, &fakeSlotStore{}, nil, nopLogger{}, 7, 30)

	require.NoError(t, jobs.RunGeneration(context.Background()))
	assert.Equal(t, 7, gen.days)
}

func TestRunGeneration_DefaultDays(t *testing.T) {
	gen := &fakeGenerator{}

	jobs := NewSlotJobs(gen, &fakeSlotStore{}, nil, nopLogger{}, 0, 0)

	require.NoError(t, jobs.RunGeneration(context.Background()))
	assert.Equal(t, domain.DefaultGenerationDays, gen.days)
}

func TestRunInitialGeneration_EmptyCalendar(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	gen := &fakeGenerator{created: 90}
	store := &fakeSlotStore{todayCount: 0}

	jobs := NewSlotJobs(gen, store, fixedClock{now: now}, nopLogger{}, 7, 30)

	require.NoError(t, jobs.RunInitialGeneration(context.Background()))
	assert.Equal(t, 7, gen.days)
}

func TestRunInitialGeneration_SkipsWhenSlotsExist(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	gen := &fakeGenerator{}
	store := &fakeSlotStore{todayCount: 36}

	jobs := NewSlotJobs(gen, store, fixedClock{now: now}, nopLogger{}, 7, 30)

	require.NoError(t, jobs.RunInitialGeneration(context.Background()))
	assert.Zero(t, gen.days)
}

func TestRunCleanup(t *testing.T) {
	now := time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC)
	store := &fakeSlotStore{deleteDeleted: 42}

	jobs := NewSlotJobs(&fakeGenerator{}, store, fixedClock{now: now}, nopLogger{}, 7, 30)

	require.NoError(t, jobs.RunCleanup(context.Background()))
	assert.Equal(t, now.AddDate(0, 0, -30), store.deleteCutoff)
}
