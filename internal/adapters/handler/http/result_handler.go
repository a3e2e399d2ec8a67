package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/ports"
)

type ResultHandler struct {
	service ports.ResultService
}

func NewResultHandler(service ports.ResultService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// GetPollResults godoc
// @Summary      Returns poll results
// @Description  Returns per-option vote counts and percentages for the poll
// @Tags         results
// @Produce      json
// @Success      200
// @Failure      400
// @Router       /api/polls/{id}/results [get]
func (h *ResultHandler) GetPollResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	stats, err := h.service.GetPollStats(r.Context(), pollID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
