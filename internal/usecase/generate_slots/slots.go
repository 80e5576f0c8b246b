package generate_slots

import (
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

// generateSlotsForDate раскладывает рабочий день центра на слоты.
// Для нерабочего дня недели возвращает пустой список.
// Неполный слот в конце дня (end > workEnd) отбрасывается.
func generateSlotsForDate(center *domain.ServiceCenter, date time.Time) []*domain.Slot {
	if !center.IsWorkingDay(date.Weekday()) {
		return nil
	}

	slots := make([]*domain.Slot, 0)

	start := center.WorkStart
	for {
		end, err := start.AddMinutes(center.SlotDurationMinutes)
		if err != nil {
			// Слот пересекает границу суток - день закончился
			break
		}

		if end.IsAfter(center.WorkEnd) {
			break
		}

		slots = append(slots, &domain.Slot{
			CenterID:    center.ID,
			SlotDate:    truncateToDate(date),
			StartTime:   start,
			EndTime:     end,
			Capacity:    center.CapacityPerSlot,
			CurrentLoad: 0,
			Status:      domain.SlotStatusAvailable,
			IsActive:    true,
		})

		start = end
	}

	return slots
}

// truncateToDate обнуляет время, оставляя только дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
