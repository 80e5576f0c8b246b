package generate_slots

import (
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	generateSlots "github.com/m04kA/GSC-SlotService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	CenterID int64  `json:"centerId"`
	Date     string `json:"date,omitempty"` // "2025-10-15", по умолчанию сегодня
	Days     int    `json:"days,omitempty"` // по умолчанию 7
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	CenterID     int64 `json:"centerId"`
	DaysCovered  int   `json:"daysCovered"`
	SlotsCreated int64 `json:"slotsCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest() (*generateSlots.Request, error) {
	req := &generateSlots.Request{
		CenterID: r.CenterID,
		Days:     r.Days,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		CenterID:     resp.CenterID,
		DaysCovered:  resp.DaysCovered,
		SlotsCreated: resp.SlotsCreated,
	}
}
