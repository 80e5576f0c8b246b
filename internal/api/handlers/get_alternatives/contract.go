package get_alternatives

import (
	"context"

	getAlternatives "github.com/m04kA/GSC-SlotService/internal/usecase/get_alternatives"
)

type GetAlternativesUseCase interface {
	Execute(ctx context.Context, req *getAlternatives.Request) (*getAlternatives.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
