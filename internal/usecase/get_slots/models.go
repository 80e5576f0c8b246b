package get_slots

import (
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	"github.com/m04kA/GSC-SlotService/pkg/types"
)

// Request модель запроса списка слотов
type Request struct {
	CenterID int64              // ID сервисного центра
	Date     time.Time          // Дата (без времени)
	Status   *domain.SlotStatus // Фильтр по статусу (опционально)
}

// SlotView слот с расчетными показателями загрузки
type SlotView struct {
	ID          int64
	CenterID    int64
	SlotDate    time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	CurrentLoad int
	Status      string
	IsActive    bool
	LoadScore   float64             // доля занятой емкости, 0.0 .. 1.0
	Wait        domain.WaitEstimate // оценка ожидания в минутах
}

// Response модель ответа со списком слотов
type Response struct {
	CenterID int64
	Date     time.Time
	Slots    []SlotView
}
