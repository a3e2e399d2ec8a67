package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/pollhub/api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps a domain error to its HTTP status, hiding internal
// detail behind a generic message for unexpected failures.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("unexpected error: %v", err)
		writeError(w, status, domain.ErrInternal.Error())
		return
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrNotEnoughOptions),
		errors.Is(err, domain.ErrInvalidPollID),
		errors.Is(err, domain.ErrInvalidOption),
		errors.Is(err, domain.ErrPollNotActive),
		errors.Is(err, domain.ErrPollExpired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotPollAuthor):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPollNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyVotedOnPoll),
		errors.Is(err, domain.ErrAlreadyVotedForOption),
		errors.Is(err, domain.ErrDuplicateVote):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
