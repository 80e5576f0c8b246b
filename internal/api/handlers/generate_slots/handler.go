package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/GSC-SlotService/internal/api/handlers"
	generateSlots "github.com/m04kA/GSC-SlotService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCenterNotFound     = "сервисный центр не найден"
	msgCenterInactive     = "сервисный центр деактивирован"
	msgInvalidInput       = "некорректные параметры генерации"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots/generate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrCenterNotFound):
			h.logger.Warn("POST /slots/generate - Center not found: center_id=%d", req.CenterID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, generateSlots.ErrCenterInactive):
			h.logger.Warn("POST /slots/generate - Center inactive: center_id=%d", req.CenterID)
			handlers.RespondConflict(w, msgCenterInactive)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/generate - Failed: center_id=%d, error=%v", req.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/generate - Generated %d slots: center_id=%d, days=%d",
		result.SlotsCreated, result.CenterID, result.DaysCovered)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
