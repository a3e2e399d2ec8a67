package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
)

type VoteRepository interface {
	SaveVote(ctx context.Context, vote *domain.Vote) error
	DeleteVote(ctx context.Context, pollID, optionID, userID uuid.UUID) error
	ListUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]uuid.UUID, error)
}

type VoteInput struct {
	PollID   uuid.UUID
	OptionID uuid.UUID
	UserID   uuid.UUID
}

type VoteService interface {
	Submit(ctx context.Context, input VoteInput) (*domain.Vote, error)
	Remove(ctx context.Context, input VoteInput) error
	ListUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]uuid.UUID, error)
}
