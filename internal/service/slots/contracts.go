package slots

import (
	"context"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListByCenterAndDate(ctx context.Context, centerID int64, date time.Time, status *domain.SlotStatus) ([]*domain.Slot, error)
	UpdateLoad(ctx context.Context, id int64, currentLoad int, status domain.SlotStatus) error
	SetActive(ctx context.Context, id int64, isActive bool, status domain.SlotStatus) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
