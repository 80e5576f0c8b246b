package set_slot_active

import (
	"context"

	"github.com/m04kA/GSC-SlotService/internal/service/slots/models"
)

type SlotService interface {
	SetActive(ctx context.Context, id int64, isActive bool) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
