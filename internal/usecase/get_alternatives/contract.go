package get_alternatives

import (
	"context"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListByCenterAndDate(ctx context.Context, centerID int64, date time.Time, status *domain.SlotStatus) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
