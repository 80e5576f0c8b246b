package job_control

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/GSC-SlotService/internal/api/handlers"
	"github.com/m04kA/GSC-SlotService/internal/jobs"
)

const (
	msgAlreadyRunning = "планировщик уже запущен"
	msgNotRunning     = "планировщик не запущен"
)

// StatusResponse состояние планировщика
type StatusResponse struct {
	Running bool             `json:"running"`
	Jobs    []jobs.JobStatus `json:"jobs"`
}

type Handler struct {
	registry JobRegistry
	logger   Logger
}

func NewHandler(registry JobRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// HandleStatus GET /api/v1/jobs/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := h.registry.Status()
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		Running: status.Running,
		Jobs:    status.Jobs,
	})
}

// HandleStart POST /api/v1/jobs/start
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	// Планировщик живет дольше запроса, контекст запроса не подходит
	if err := h.registry.Start(context.Background()); err != nil {
		if errors.Is(err, jobs.ErrAlreadyRunning) {
			h.logger.Warn("POST /jobs/start - Registry already running")
			handlers.RespondConflict(w, msgAlreadyRunning)
			return
		}
		h.logger.Error("POST /jobs/start - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /jobs/start - Registry started")
	handlers.RespondJSON(w, http.StatusOK, h.registry.Status())
}

// HandleStop POST /api/v1/jobs/stop
func (h *Handler) HandleStop(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Stop(); err != nil {
		if errors.Is(err, jobs.ErrNotRunning) {
			h.logger.Warn("POST /jobs/stop - Registry not running")
			handlers.RespondConflict(w, msgNotRunning)
			return
		}
		h.logger.Error("POST /jobs/stop - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /jobs/stop - Registry stopped")
	handlers.RespondJSON(w, http.StatusOK, h.registry.Status())
}
