package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Options       []string   `json:"options"`
	AllowMultiple bool       `json:"allow_multiple"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type updatePollRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	AllowMultiple *bool      `json:"allow_multiple"`
	ExpiresAt     *time.Time `json:"expires_at"`
	ClearExpiry   bool       `json:"clear_expiry"`
	Options       []string   `json:"options"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  Creates a poll with at least two options, owned by the authenticated user
// @Tags         polls
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      401
// @Router       /api/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreatePollInput{
		Title:         req.Title,
		Description:   req.Description,
		Options:       req.Options,
		AllowMultiple: req.AllowMultiple,
		ExpiresAt:     req.ExpiresAt,
	}

	poll, err := h.service.Create(r.Context(), userIDFromContext(r.Context()), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

// GetPoll godoc
// @Summary      Fetches a poll
// @Description  Returns the poll with its author and ordered options
// @Tags         polls
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /api/polls/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing poll id")
		return
	}

	poll, err := h.service.GetPoll(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

// ListPolls godoc
// @Summary      Lists polls
// @Description  Lists polls with optional search, author, activity and sort filters
// @Tags         polls
// @Produce      json
// @Success      200
// @Router       /api/polls [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ports.PollFilter{
		Search:    q.Get("search"),
		SortBy:    ports.PollSortField(q.Get("sortBy")),
		SortOrder: ports.SortOrder(q.Get("sortOrder")),
	}
	if v := q.Get("author"); v != "" {
		authorID, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid author id")
			return
		}
		filter.AuthorID = &authorID
	}
	if q.Has("isActive") {
		isActive := q.Get("isActive") == "true"
		filter.IsActive = &isActive
	}
	if q.Has("currentUserOnly") {
		filter.CurrentUserOnly = q.Get("currentUserOnly") == "true"
	}

	polls, err := h.service.ListPolls(r.Context(), userIDFromContext(r.Context()), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, polls)
}

// UpdatePoll godoc
// @Summary      Updates a poll
// @Description  Applies a partial edit; only the poll author may update. Replacement options require at least two valid entries.
// @Tags         polls
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      401
// @Failure      403
// @Failure      404
// @Router       /api/polls/{id} [put]
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := ports.PollUpdate{
		Title:         req.Title,
		Description:   req.Description,
		AllowMultiple: req.AllowMultiple,
		ExpiresAt:     req.ExpiresAt,
		ClearExpiry:   req.ClearExpiry,
		Options:       req.Options,
	}

	if err := h.service.Update(r.Context(), id, userIDFromContext(r.Context()), update); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeletePoll godoc
// @Summary      Deletes a poll
// @Description  Deletes the poll with its options and votes; only the poll author may delete
// @Tags         polls
// @Produce      json
// @Success      200
// @Failure      401
// @Failure      403
// @Failure      404
// @Router       /api/polls/{id} [delete]
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id, userIDFromContext(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
