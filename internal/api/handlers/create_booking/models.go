package create_booking

import (
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	createBooking "github.com/m04kA/GSC-SlotService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID      int64  `json:"slotId"`
	ServiceName string `json:"serviceName"`
	Priority    string `json:"priority,omitempty"` // normal | senior_citizen | disabled | emergency
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	UserID        int64  `json:"userId"`
	CenterID      int64  `json:"centerId"`
	SlotID        int64  `json:"slotId"`
	ServiceName   string `json:"serviceName"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	SlotDate      string `json:"slotDate"`  // "2025-10-15"
	StartTime     string `json:"startTime"` // "10:00"
	EndTime       string `json:"endTime"`   // "10:30"
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:      userID,
		SlotID:      r.SlotID,
		ServiceName: r.ServiceName,
		Priority:    domain.BookingPriority(r.Priority),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		BookingNumber: resp.BookingNumber,
		UserID:        resp.UserID,
		CenterID:      resp.CenterID,
		SlotID:        resp.SlotID,
		ServiceName:   resp.ServiceName,
		Status:        resp.Status,
		Priority:      resp.Priority,
		SlotDate:      resp.SlotDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
