package get_slots

import (
	"github.com/m04kA/GSC-SlotService/internal/domain"
	getSlots "github.com/m04kA/GSC-SlotService/internal/usecase/get_slots"
)

// SlotResponse HTTP модель слота с расчетной загрузкой
type SlotResponse struct {
	ID          int64        `json:"id"`
	CenterID    int64        `json:"centerId"`
	SlotDate    string       `json:"slotDate"`
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
	Capacity    int          `json:"capacity"`
	CurrentLoad int          `json:"currentLoad"`
	Status      string       `json:"status"`
	IsActive    bool         `json:"isActive"`
	LoadScore   float64      `json:"loadScore"`
	Wait        WaitResponse `json:"estimatedWait"`
}

// WaitResponse оценка времени ожидания в минутах
type WaitResponse struct {
	MinMinutes     int `json:"minMinutes"`
	MaxMinutes     int `json:"maxMinutes"`
	AverageMinutes int `json:"averageMinutes"`
}

// SlotListResponse HTTP response model
type SlotListResponse struct {
	CenterID int64          `json:"centerId"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
	Total    int            `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotListResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:          s.ID,
			CenterID:    s.CenterID,
			SlotDate:    s.SlotDate.Format(domain.DateFormat),
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			Capacity:    s.Capacity,
			CurrentLoad: s.CurrentLoad,
			Status:      s.Status,
			IsActive:    s.IsActive,
			LoadScore:   s.LoadScore,
			Wait: WaitResponse{
				MinMinutes:     s.Wait.MinMinutes,
				MaxMinutes:     s.Wait.MaxMinutes,
				AverageMinutes: s.Wait.AverageMinutes,
			},
		})
	}

	return &SlotListResponse{
		CenterID: resp.CenterID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
		Total:    len(slots),
	}
}
