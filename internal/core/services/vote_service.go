package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	cache    ports.ResultCache
}

// NewVoteService wires the vote mutation flow. cache may be nil when no
// result cache is configured.
func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, cache ports.ResultCache) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		cache:    cache,
	}
}

func (s *voteService) Submit(ctx context.Context, input ports.VoteInput) (*domain.Vote, error) {
	if input.UserID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !poll.IsActive {
		return nil, domain.ErrPollNotActive
	}
	if poll.Expired(now) {
		return nil, domain.ErrPollExpired
	}
	if !poll.HasOption(input.OptionID) {
		return nil, domain.ErrInvalidOption
	}

	existing, err := s.voteRepo.ListUserVotes(ctx, input.PollID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !domain.CanVote(poll, input.OptionID, existing, now) {
		return nil, conflictFor(poll)
	}

	vote := &domain.Vote{
		ID:        uuid.New(),
		PollID:    input.PollID,
		OptionID:  input.OptionID,
		UserID:    input.UserID,
		CreatedAt: now,
	}

	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		// A concurrent duplicate loses the uniqueness race in the store; it
		// is the same conflict as the check above catching it first.
		if errors.Is(err, domain.ErrDuplicateVote) {
			return nil, conflictFor(poll)
		}
		return nil, err
	}

	s.invalidate(ctx, input.PollID)
	return vote, nil
}

func (s *voteService) Remove(ctx context.Context, input ports.VoteInput) error {
	if input.UserID == uuid.Nil {
		return domain.ErrUnauthenticated
	}

	// Deleting an absent vote is a no-op success.
	if err := s.voteRepo.DeleteVote(ctx, input.PollID, input.OptionID, input.UserID); err != nil {
		return err
	}

	s.invalidate(ctx, input.PollID)
	return nil
}

func (s *voteService) ListUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]uuid.UUID, error) {
	// Anonymous callers hold no votes; fail open rather than erroring.
	if userID == uuid.Nil {
		return []uuid.UUID{}, nil
	}

	return s.voteRepo.ListUserVotes(ctx, pollID, userID)
}

func (s *voteService) invalidate(ctx context.Context, pollID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, pollID); err != nil {
		log.Printf("failed to invalidate result cache for poll %s: %v", pollID, err)
	}
}

// conflictFor picks the user-facing duplicate-vote message: single-choice
// polls report the whole poll as voted, multi-choice ones the single option.
func conflictFor(poll *domain.Poll) error {
	if poll.AllowMultiple {
		return domain.ErrAlreadyVotedForOption
	}
	return domain.ErrAlreadyVotedOnPoll
}
