package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// IsValid возвращает true для известного статуса бронирования
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// BookingPriority приоритет обслуживания
type BookingPriority string

const (
	PriorityNormal        BookingPriority = "normal"
	PrioritySeniorCitizen BookingPriority = "senior_citizen"
	PriorityDisabled      BookingPriority = "disabled"
	PriorityEmergency     BookingPriority = "emergency"
)

// IsValid возвращает true для известного приоритета
func (p BookingPriority) IsValid() bool {
	switch p {
	case PriorityNormal, PrioritySeniorCitizen, PriorityDisabled, PriorityEmergency:
		return true
	}
	return false
}

// Booking бронирование слота пользователем
//
// Терминальные статусы (completed, cancelled, no_show) финальны -
// дальнейшие переходы запрещены
type Booking struct {
	ID            int64
	BookingNumber string
	UserID        int64
	CenterID      int64
	SlotID        int64
	ServiceName   string
	Status        BookingStatus
	Priority      BookingPriority

	CheckInTime        *time.Time
	CompletionTime     *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal возвращает true для финального статуса
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsActive возвращает true для нетерминального бронирования
// Активные бронирования занимают место в слоте
func (b *Booking) IsActive() bool {
	return !b.IsTerminal()
}

// CanCheckIn возвращает true, если по бронированию можно отметить прибытие
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}

// CanComplete возвращает true, если бронирование можно завершить
func (b *Booking) CanComplete() bool {
	return b.Status == StatusCheckedIn
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanMarkNoShow возвращает true, если бронирование можно пометить как неявку
func (b *Booking) CanMarkNoShow() bool {
	return b.Status == StatusBooked || b.Status == StatusConfirmed
}
