package get_alternatives

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GSC-SlotService/internal/api/handlers"
	getAlternatives "github.com/m04kA/GSC-SlotService/internal/usecase/get_alternatives"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgInvalidLimit  = "некорректный параметр limit"
	msgSlotNotFound  = "слот не найден"
)

type Handler struct {
	useCase GetAlternativesUseCase
	logger  Logger
}

func NewHandler(useCase GetAlternativesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/alternatives?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{id}/alternatives - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	req := &getAlternatives.Request{SlotID: slotID}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.logger.Warn("GET /slots/{id}/alternatives - Invalid limit %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAlternatives.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id}/alternatives - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, getAlternatives.ErrInvalidInput):
			h.logger.Warn("GET /slots/{id}/alternatives - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("GET /slots/{id}/alternatives - Failed: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{id}/alternatives - Found %d alternatives: slot_id=%d",
		len(result.Alternatives), slotID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
