package get_alternatives

import (
	"sort"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	"github.com/m04kA/GSC-SlotService/pkg/types"
)

// Веса итогового рейтинга: загрузка важнее близости по времени.
// Разница во времени нормируется к окну в 120 минут.
const (
	loadWeight        = 0.7
	timeWeight        = 0.3
	timeWindowMinutes = 120.0
)

// rankAlternatives отбирает и ранжирует кандидатов вместо запрошенного слота.
// Кандидат проходит, если он активен, доступен и не является самим слотом.
// Сортировка по возрастанию рейтинга стабильна: при равном рейтинге
// сохраняется порядок по времени начала из выборки.
func rankAlternatives(requested *domain.Slot, candidates []*domain.Slot, limit int) []Alternative {
	alternatives := make([]Alternative, 0, len(candidates))

	for _, slot := range candidates {
		if slot.ID == requested.ID {
			continue
		}
		if !slot.IsBookable() {
			continue
		}

		timeDiff, err := types.DiffMinutes(requested.StartTime, slot.StartTime)
		if err != nil {
			continue
		}
		if timeDiff < 0 {
			timeDiff = -timeDiff
		}

		loadScore := slot.LoadScore()
		combined := loadWeight*loadScore + timeWeight*(float64(timeDiff)/timeWindowMinutes)

		alternatives = append(alternatives, Alternative{
			SlotID:         slot.ID,
			CenterID:       slot.CenterID,
			SlotDate:       slot.SlotDate,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Capacity:       slot.Capacity,
			CurrentLoad:    slot.CurrentLoad,
			LoadScore:      loadScore,
			TimeDiffMin:    timeDiff,
			CombinedScore:  combined,
			Recommendation: recommendationFor(combined),
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].CombinedScore < alternatives[j].CombinedScore
	})

	if limit > 0 && len(alternatives) > limit {
		alternatives = alternatives[:limit]
	}

	return alternatives
}

// recommendationFor переводит рейтинг в словесную оценку
func recommendationFor(score float64) string {
	switch {
	case score < 0.5:
		return "highly recommended"
	case score < 0.7:
		return "recommended"
	default:
		return "available"
	}
}
