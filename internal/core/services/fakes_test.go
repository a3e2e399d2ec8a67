package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

// In-memory fakes of the repository ports, mirroring the store's behavior
// closely enough for service tests: vote uniqueness over the full triple and
// cascade of votes when options are replaced or a poll is deleted.

type fakePollRepo struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.Poll
	votes *fakeVoteRepo
}

func newFakePollRepo(votes *fakeVoteRepo) *fakePollRepo {
	return &fakePollRepo{
		polls: make(map[uuid.UUID]*domain.Poll),
		votes: votes,
	}
}

func (r *fakePollRepo) Save(ctx context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *poll
	clone.Options = append([]domain.PollOption(nil), poll.Options...)
	r.polls[poll.ID] = &clone
	return nil
}

func (r *fakePollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	clone := *poll
	clone.Options = append([]domain.PollOption(nil), poll.Options...)
	return &clone, nil
}

func (r *fakePollRepo) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	polls := make([]*domain.Poll, 0, len(r.polls))
	for _, poll := range r.polls {
		polls = append(polls, poll)
	}
	return polls, nil
}

func (r *fakePollRepo) List(ctx context.Context, filter ports.PollFilter) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	polls := []*domain.Poll{}
	for _, poll := range r.polls {
		if filter.AuthorID != nil && poll.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.IsActive != nil && poll.IsActive != *filter.IsActive {
			continue
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

func (r *fakePollRepo) UpdateFields(ctx context.Context, id uuid.UUID, update ports.PollUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	if update.Title != nil {
		poll.Title = *update.Title
	}
	if update.Description != nil {
		poll.Description = *update.Description
	}
	if update.AllowMultiple != nil {
		poll.AllowMultiple = *update.AllowMultiple
	}
	if update.ExpiresAt != nil {
		poll.ExpiresAt = update.ExpiresAt
	} else if update.ClearExpiry {
		poll.ExpiresAt = nil
	}
	return nil
}

func (r *fakePollRepo) ReplaceOptions(ctx context.Context, pollID uuid.UUID, options []domain.PollOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	poll, ok := r.polls[pollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.Options = append([]domain.PollOption(nil), options...)
	if r.votes != nil {
		r.votes.dropPollVotes(pollID)
	}
	return nil
}

func (r *fakePollRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.polls[id]; !ok {
		return domain.ErrPollNotFound
	}
	delete(r.polls, id)
	if r.votes != nil {
		r.votes.dropPollVotes(id)
	}
	return nil
}

type fakeVoteRepo struct {
	mu    sync.Mutex
	votes []domain.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{}
}

func (r *fakeVoteRepo) SaveVote(ctx context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes {
		if v.PollID == vote.PollID && v.OptionID == vote.OptionID && v.UserID == vote.UserID {
			return domain.ErrDuplicateVote
		}
	}
	r.votes = append(r.votes, *vote)
	return nil
}

func (r *fakeVoteRepo) DeleteVote(ctx context.Context, pollID, optionID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.PollID == pollID && v.OptionID == optionID && v.UserID == userID {
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
	return nil
}

func (r *fakeVoteRepo) ListUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	optionIDs := []uuid.UUID{}
	for _, v := range r.votes {
		if v.PollID == pollID && v.UserID == userID {
			optionIDs = append(optionIDs, v.OptionID)
		}
	}
	return optionIDs, nil
}

func (r *fakeVoteRepo) dropPollVotes(pollID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.PollID == pollID {
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
}

type fakeResultCache struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
	stored      map[uuid.UUID]map[uuid.UUID]domain.PollOptionStats
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{
		stored: make(map[uuid.UUID]map[uuid.UUID]domain.PollOptionStats),
	}
}

func (c *fakeResultCache) GetStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stored[pollID], nil
}

func (c *fakeResultCache) SetStats(ctx context.Context, pollID uuid.UUID, stats map[uuid.UUID]domain.PollOptionStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored[pollID] = stats
	return nil
}

func (c *fakeResultCache) Invalidate(ctx context.Context, pollID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pollID)
	delete(c.stored, pollID)
	return nil
}
