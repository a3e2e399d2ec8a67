package domain

import "errors"

// Validation errors (bad input).
var (
	ErrTitleRequired    = errors.New("poll title is required")
	ErrNotEnoughOptions = errors.New("at least two valid options are required")
	ErrInvalidPollID    = errors.New("invalid poll id")
	ErrInvalidOption    = errors.New("invalid option for this poll")
)

// Identity and ownership errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotPollAuthor   = errors.New("only the poll author may do this")
)

// State errors blocking votes.
var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrPollNotActive = errors.New("poll is not active")
	ErrPollExpired   = errors.New("poll has expired")
)

// Conflict errors for duplicate votes. The single-choice and multi-choice
// variants carry distinct user-facing messages; ErrDuplicateVote is what the
// store reports on a uniqueness violation before the service picks a variant.
var (
	ErrAlreadyVotedOnPoll    = errors.New("you have already voted on this poll")
	ErrAlreadyVotedForOption = errors.New("you have already voted for this option")
	ErrDuplicateVote         = errors.New("duplicate vote")
)

var ErrInternal = errors.New("internal server error")
