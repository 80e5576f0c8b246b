package models

import (
	"github.com/m04kA/GSC-SlotService/internal/domain"
)

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID          int64   `json:"id"`
	CenterID    int64   `json:"centerId"`
	SlotDate    string  `json:"slotDate"`  // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	EndTime     string  `json:"endTime"`   // "10:30"
	Capacity    int     `json:"capacity"`
	CurrentLoad int     `json:"currentLoad"`
	Status      string  `json:"status"`
	IsActive    bool    `json:"isActive"`
	LoadScore   float64 `json:"loadScore"`

	EstimatedWait WaitResponse `json:"estimatedWait"`
}

// WaitResponse оценка времени ожидания в минутах
type WaitResponse struct {
	MinMinutes     int `json:"minMinutes"`
	MaxMinutes     int `json:"maxMinutes"`
	AverageMinutes int `json:"averageMinutes"`
}

// DaySummaryResponse сводка загрузки центра на дату
type DaySummaryResponse struct {
	CenterID       int64    `json:"centerId"`
	Date           string   `json:"date"`
	TotalSlots     int      `json:"totalSlots"`
	AvailableSlots int      `json:"availableSlots"`
	FullSlots      int      `json:"fullSlots"`
	ClosedSlots    int      `json:"closedSlots"`
	TotalCapacity  int      `json:"totalCapacity"`
	TotalLoad      int      `json:"totalLoad"`
	AverageLoad    float64  `json:"averageLoad"`    // средний коэффициент загрузки по всем слотам дня
	UtilizationPct float64  `json:"utilizationPct"` // 0.0 .. 100.0
	PeakHours      []string `json:"peakHours"`      // часы со средней загрузкой > 0.7, метки "9:00"
	QuietHours     []string `json:"quietHours"`     // часы со средней загрузкой < 0.3
}

// FromDomainSlot конвертирует domain модель в response
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	wait := s.EstimateWait()
	return &SlotResponse{
		ID:          s.ID,
		CenterID:    s.CenterID,
		SlotDate:    s.SlotDate.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		CurrentLoad: s.CurrentLoad,
		Status:      string(s.Status),
		IsActive:    s.IsActive,
		LoadScore:   s.LoadScore(),
		EstimatedWait: WaitResponse{
			MinMinutes:     wait.MinMinutes,
			MaxMinutes:     wait.MaxMinutes,
			AverageMinutes: wait.AverageMinutes,
		},
	}
}
