package get_slot_summary

import (
	"context"
	"time"

	"github.com/m04kA/GSC-SlotService/internal/service/slots/models"
)

type SlotService interface {
	DaySummary(ctx context.Context, centerID int64, date time.Time) (*models.DaySummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
