package domain

import (
	"time"

	"github.com/google/uuid"
)

// CanVote decides whether a vote action on the given option is currently
// admissible. existingOptionIDs is the set of options the acting user already
// holds votes for in this poll. The rules apply in order:
//
//  1. an inactive poll admits nothing;
//  2. an expired poll admits nothing;
//  3. an option the user already voted for is always admissible, so that a
//     held vote can be toggled off;
//  4. a single-choice poll admits nothing once the user holds any vote in it.
//
// Pure over its inputs; callers load the poll and vote state themselves.
func CanVote(poll *Poll, optionID uuid.UUID, existingOptionIDs []uuid.UUID, now time.Time) bool {
	if !poll.IsActive {
		return false
	}
	if poll.Expired(now) {
		return false
	}
	for _, id := range existingOptionIDs {
		if id == optionID {
			return true
		}
	}
	if !poll.AllowMultiple && len(existingOptionIDs) > 0 {
		return false
	}
	return true
}
