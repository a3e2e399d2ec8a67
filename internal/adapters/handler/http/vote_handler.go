package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	OptionID uuid.UUID `json:"option_id"`
}

// SubmitVote godoc
// @Summary      Casts a vote
// @Description  Casts the authenticated user's vote for one option of the poll
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      401
// @Failure      404
// @Failure      409
// @Router       /api/polls/{id}/votes [post]
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.VoteInput{
		PollID:   pollID,
		OptionID: req.OptionID,
		UserID:   userIDFromContext(r.Context()),
	}

	vote, err := h.service.Submit(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vote)
}

// RemoveVote godoc
// @Summary      Removes a vote
// @Description  Removes the authenticated user's vote for the option; removing an absent vote succeeds
// @Tags         votes
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /api/polls/{id}/votes/{optionID} [delete]
func (h *VoteHandler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}
	optionID, err := uuid.Parse(chi.URLParam(r, "optionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid option id")
		return
	}

	input := ports.VoteInput{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userIDFromContext(r.Context()),
	}

	if err := h.service.Remove(r.Context(), input); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MyVotes godoc
// @Summary      Lists the caller's votes on a poll
// @Description  Returns the option ids the authenticated user voted for; anonymous callers get an empty list
// @Tags         votes
// @Produce      json
// @Success      200
// @Router       /api/polls/{id}/my-votes [get]
func (h *VoteHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	optionIDs, err := h.service.ListUserVotes(r.Context(), pollID, userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]uuid.UUID{"option_ids": optionIDs})
}
