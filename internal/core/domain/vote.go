package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one (user, option) admissibility grant. A user may hold at most one
// vote per option; single-choice polls further restrict the user to one vote
// across the whole poll.
type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
