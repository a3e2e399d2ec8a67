package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	AuthorID      uuid.UUID    `json:"author_id"`
	IsActive      bool         `json:"is_active"`
	AllowMultiple bool         `json:"allow_multiple"`
	Options       []PollOption `json:"options"`
	Author        *User        `json:"author,omitempty"`
	TotalVotes    int64        `json:"total_votes"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type PollOption struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Text      string    `json:"text"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the poll's deadline, if any, has passed.
func (p *Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// HasOption reports whether the option belongs to this poll.
func (p *Poll) HasOption(optionID uuid.UUID) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

type PollOptionStats struct {
	VoteCount  int64   `json:"vote_count"`
	Percentage float64 `json:"percentage"`
}
