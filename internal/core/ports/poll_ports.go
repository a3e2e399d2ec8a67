package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
)

// PollSortField and SortOrder whitelist the sortable columns; anything else
// is rejected before reaching the store.
type PollSortField string

const (
	SortByCreatedAt  PollSortField = "created_at"
	SortByTotalVotes PollSortField = "total_votes"
	SortByTitle      PollSortField = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PollFilter carries the optional list filters. Nil pointer means the filter
// is absent, not false/empty.
type PollFilter struct {
	Search          string
	AuthorID        *uuid.UUID
	IsActive        *bool
	CurrentUserOnly bool
	SortBy          PollSortField
	SortOrder       SortOrder
}

// PollUpdate carries a partial poll edit. Nil pointer fields are left
// untouched; a non-nil empty Description clears it.
type PollUpdate struct {
	Title         *string
	Description   *string
	AllowMultiple *bool
	ExpiresAt     *time.Time
	ClearExpiry   bool
	Options       []string
}

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	List(ctx context.Context, filter PollFilter) ([]*domain.Poll, error)
	UpdateFields(ctx context.Context, id uuid.UUID, update PollUpdate) error
	ReplaceOptions(ctx context.Context, pollID uuid.UUID, options []domain.PollOption) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title         string
	Description   string
	Options       []string
	AllowMultiple bool
	ExpiresAt     *time.Time
}

type PollService interface {
	Create(ctx context.Context, authorID uuid.UUID, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, callerID uuid.UUID, filter PollFilter) ([]*domain.Poll, error)
	Update(ctx context.Context, id string, callerID uuid.UUID, update PollUpdate) error
	Delete(ctx context.Context, id string, callerID uuid.UUID) error
}
