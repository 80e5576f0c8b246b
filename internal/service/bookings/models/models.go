package models

import (
	"errors"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	BookingID          int64  `json:"bookingId"`
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	UserID        int64  `json:"userId"`
	CenterID      int64  `json:"centerId"`
	SlotID        int64  `json:"slotId"`
	ServiceName   string `json:"serviceName"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`

	CheckInTime        *string `json:"checkInTime,omitempty"`        // RFC3339
	CompletionTime     *string `json:"completionTime,omitempty"`     // RFC3339
	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt string `json:"createdAt"` // RFC3339
	UpdatedAt string `json:"updatedAt"` // RFC3339
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		UserID:             b.UserID,
		CenterID:           b.CenterID,
		SlotID:             b.SlotID,
		ServiceName:        b.ServiceName,
		Status:             string(b.Status),
		Priority:           string(b.Priority),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(domain.TimestampFormat),
		UpdatedAt:          b.UpdatedAt.Format(domain.TimestampFormat),
	}

	if b.CheckInTime != nil {
		v := b.CheckInTime.Format(domain.TimestampFormat)
		resp.CheckInTime = &v
	}
	if b.CompletionTime != nil {
		v := b.CompletionTime.Format(domain.TimestampFormat)
		resp.CompletionTime = &v
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
