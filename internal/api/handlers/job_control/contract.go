package job_control

import (
	"context"

	"github.com/m04kA/GSC-SlotService/internal/jobs"
)

type JobRegistry interface {
	Start(ctx context.Context) error
	Stop() error
	Status() jobs.Status
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
