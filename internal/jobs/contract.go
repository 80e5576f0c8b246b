package jobs

import (
	"context"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
	bookingModels "github.com/m04kA/GSC-SlotService/internal/service/bookings/models"
)

// SlotGenerator интерфейс генератора расписания слотов
type SlotGenerator interface {
	GenerateForAllCenters(ctx context.Context, days int) (int64, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByStatuses(ctx context.Context, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	CancelStaleBefore(ctx context.Context, cutoff time.Time, reason string) ([]int64, error)
}

// BookingLifecycle интерфейс сервиса жизненного цикла бронирований
type BookingLifecycle interface {
	MarkNoShow(ctx context.Context, bookingID int64) (*bookingModels.BookingResponse, error)
}

// SlotReconciler интерфейс выравнивания загрузки слотов
type SlotReconciler interface {
	ReconcileLoad(ctx context.Context, slotID int64) error
}

// Clock интерфейс времени для планировщика (для тестирования)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock реальные часы для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}
