package domain

import (
	"time"

	"github.com/google/uuid"
)

// PollResult is a batch-refreshed projection of vote counts. It backs the
// results view only; eligibility checks always read the votes table.
type PollResult struct {
	PollID        uuid.UUID
	OptionID      uuid.UUID
	VoteCount     int64
	LastUpdatedAt time.Time
}
