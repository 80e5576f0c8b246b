package generate_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	"github.com/m04kA/GSC-SlotService/pkg/types"
)

func testCenter() *domain.ServiceCenter {
	return &domain.ServiceCenter{
		ID:                  1,
		Name:                "Центр на Ленина",
		WorkingDays:         []int{1, 2, 3, 4, 5}, // пн-пт
		WorkStart:           "09:00",
		WorkEnd:             "18:00",
		SlotDurationMinutes: 30,
		CapacityPerSlot:     5,
		IsActive:            true,
	}
}

func TestGenerateSlotsForDate(t *testing.T) {
	center := testCenter()
	center.WorkEnd = "10:00"

	// 2026-03-16 - понедельник
	monday := time.Date(2026, 3, 16, 15, 30, 0, 0, time.UTC)

	slots := generateSlotsForDate(center, monday)
	require.Len(t, slots, 2)

	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), slots[0].EndTime)
	assert.Equal(t, types.TimeString("09:30"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[1].EndTime)

	for _, s := range slots {
		assert.Equal(t, center.ID, s.CenterID)
		assert.Equal(t, 5, s.Capacity)
		assert.Zero(t, s.CurrentLoad)
		assert.Equal(t, domain.SlotStatusAvailable, s.Status)
		assert.True(t, s.IsActive)
		// Дата обнулена до полуночи
		assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), s.SlotDate)
	}
}

func TestGenerateSlotsForDate_NonWorkingDay(t *testing.T) {
	center := testCenter()

	// 2026-03-15 - воскресенье
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	slots := generateSlotsForDate(center, sunday)
	assert.Empty(t, slots)
}

func TestGenerateSlotsForDate_PartialSlotDropped(t *testing.T) {
	center := testCenter()
	center.WorkEnd = "10:45"

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	slots := generateSlotsForDate(center, monday)
	// 09:00-09:30, 09:30-10:00, 10:00-10:30; хвост 10:30-11:00 выходит за 10:45
	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("10:30"), slots[2].EndTime)
}

func TestGenerateSlotsForDate_FullDay(t *testing.T) {
	center := testCenter()

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	slots := generateSlotsForDate(center, monday)
	// 09:00-18:00 по 30 минут = 18 слотов
	assert.Len(t, slots, 18)
}
