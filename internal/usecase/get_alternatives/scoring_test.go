package get_alternatives

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	"github.com/m04kA/GSC-SlotService/pkg/types"
)

func makeSlot(id int64, start types.TimeString, load, capacity int) *domain.Slot {
	return &domain.Slot{
		ID:          id,
		CenterID:    1,
		SlotDate:    time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   start,
		EndTime:     start, // для ранжирования не важно
		Capacity:    capacity,
		CurrentLoad: load,
		Status:      domain.SlotStatusAvailable,
		IsActive:    true,
	}
}

func TestRankAlternatives_ExcludesRequestedSlot(t *testing.T) {
	requested := makeSlot(1, "10:00", 5, 5)
	candidates := []*domain.Slot{
		makeSlot(1, "10:00", 5, 5),
		makeSlot(2, "10:30", 0, 5),
	}

	result := rankAlternatives(requested, candidates, 10)
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].SlotID)
}

func TestRankAlternatives_ExcludesUnbookable(t *testing.T) {
	requested := makeSlot(1, "10:00", 5, 5)

	full := makeSlot(2, "10:30", 5, 5)
	full.Status = domain.SlotStatusFull

	closed := makeSlot(3, "11:00", 0, 5)
	closed.IsActive = false
	closed.Status = domain.SlotStatusClosed

	ok := makeSlot(4, "11:30", 1, 5)

	result := rankAlternatives(requested, []*domain.Slot{full, closed, ok}, 10)
	require.Len(t, result, 1)
	assert.Equal(t, int64(4), result[0].SlotID)
}

func TestRankAlternatives_CombinedScore(t *testing.T) {
	requested := makeSlot(1, "10:00", 5, 5)
	candidate := makeSlot(2, "11:00", 2, 5) // load 0.4, 60 минут от запрошенного

	result := rankAlternatives(requested, []*domain.Slot{candidate}, 10)
	require.Len(t, result, 1)

	// 0.7*0.4 + 0.3*(60/120) = 0.28 + 0.15 = 0.43
	assert.InDelta(t, 0.43, result[0].CombinedScore, 1e-9)
	assert.Equal(t, 60, result[0].TimeDiffMin)
	assert.Equal(t, "highly recommended", result[0].Recommendation)
}

func TestRankAlternatives_OrderedByScore(t *testing.T) {
	requested := makeSlot(1, "10:00", 5, 5)
	candidates := []*domain.Slot{
		makeSlot(2, "13:00", 0, 5), // далеко, но пусто: 0.3*(180/120) = 0.45
		makeSlot(3, "10:30", 1, 5), // рядом и почти пусто: 0.7*0.2 + 0.3*0.25 = 0.215
		makeSlot(4, "10:30", 4, 5), // рядом, но загружен: 0.7*0.8 + 0.3*0.25 = 0.635
	}

	result := rankAlternatives(requested, candidates, 10)
	require.Len(t, result, 3)

	assert.Equal(t, int64(3), result[0].SlotID)
	assert.Equal(t, int64(2), result[1].SlotID)
	assert.Equal(t, int64(4), result[2].SlotID)

	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].CombinedScore, result[i].CombinedScore)
	}
}

func TestRankAlternatives_StableOnEqualScores(t *testing.T) {
	requested := makeSlot(1, "10:00", 5, 5)
	// Одинаковая загрузка, одинаковое расстояние по времени в обе стороны
	before := makeSlot(2, "09:30", 2, 5)
	after := makeSlot(3, "10:30", 2, 5)

	result := rankAlternatives(requested, []*domain.Slot{before, after}, 10)
	require.Len(t, result, 2)

	// Порядок исходной выборки сохраняется
	assert.Equal(t, int64(2), result[0].SlotID)
	assert.Equal(t, int64(3), result[1].SlotID)
}

func TestRankAlternatives_Limit(t *testing.T) {
	requested := makeSlot(1, "10:00", 5, 5)
	candidates := []*domain.Slot{
		makeSlot(2, "10:30", 0, 5),
		makeSlot(3, "11:00", 0, 5),
		makeSlot(4, "11:30", 0, 5),
	}

	result := rankAlternatives(requested, candidates, 2)
	assert.Len(t, result, 2)
}

func TestRecommendationBands(t *testing.T) {
	assert.Equal(t, "highly recommended", recommendationFor(0.49))
	assert.Equal(t, "recommended", recommendationFor(0.5))
	assert.Equal(t, "recommended", recommendationFor(0.69))
	assert.Equal(t, "available", recommendationFor(0.7))
	assert.Equal(t, "available", recommendationFor(1.2))
}
