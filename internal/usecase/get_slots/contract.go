package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByCenterAndDate(ctx context.Context, centerID int64, date time.Time, status *domain.SlotStatus) ([]*domain.Slot, error)
}

// CenterRepository интерфейс репозитория сервисных центров
type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceCenter, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
