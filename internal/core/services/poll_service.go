package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

func (s *pollService) Create(ctx context.Context, authorID uuid.UUID, input ports.CreatePollInput) (*domain.Poll, error) {
	if authorID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	texts := validOptionTexts(input.Options)
	if len(texts) < 2 {
		return nil, domain.ErrNotEnoughOptions
	}

	pollID := uuid.New()
	now := time.Now()

	poll := &domain.Poll{
		ID:            pollID,
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		AuthorID:      authorID,
		IsActive:      true,
		AllowMultiple: input.AllowMultiple,
		ExpiresAt:     input.ExpiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, text := range texts {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:        uuid.New(),
			PollID:    pollID,
			Text:      text,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context, callerID uuid.UUID, filter ports.PollFilter) ([]*domain.Poll, error) {
	if filter.CurrentUserOnly {
		if callerID == uuid.Nil {
			return []*domain.Poll{}, nil
		}
		filter.AuthorID = &callerID
	}

	if filter.SortBy == "" {
		filter.SortBy = ports.SortByCreatedAt
	}
	if filter.SortOrder == "" {
		filter.SortOrder = ports.SortDesc
	}
	switch filter.SortBy {
	case ports.SortByCreatedAt, ports.SortByTotalVotes, ports.SortByTitle:
	default:
		filter.SortBy = ports.SortByCreatedAt
	}
	if filter.SortOrder != ports.SortAsc {
		filter.SortOrder = ports.SortDesc
	}

	return s.repo.List(ctx, filter)
}

func (s *pollService) Update(ctx context.Context, id string, callerID uuid.UUID, update ports.PollUpdate) error {
	poll, err := s.authorizeOwner(ctx, id, callerID)
	if err != nil {
		return err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return domain.ErrTitleRequired
		}
		update.Title = &title
	}
	if update.Description != nil {
		desc := strings.TrimSpace(*update.Description)
		update.Description = &desc
	}

	if err := s.repo.UpdateFields(ctx, poll.ID, update); err != nil {
		return err
	}

	// Replacement options apply wholesale, and only when at least two survive
	// trimming; otherwise the existing option set stays untouched.
	if len(update.Options) > 0 {
		texts := validOptionTexts(update.Options)
		if len(texts) >= 2 {
			now := time.Now()
			options := make([]domain.PollOption, 0, len(texts))
			for _, text := range texts {
				options = append(options, domain.PollOption{
					ID:        uuid.New(),
					PollID:    poll.ID,
					Text:      text,
					CreatedAt: now,
					UpdatedAt: now,
				})
			}
			if err := s.repo.ReplaceOptions(ctx, poll.ID, options); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *pollService) Delete(ctx context.Context, id string, callerID uuid.UUID) error {
	poll, err := s.authorizeOwner(ctx, id, callerID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, poll.ID)
}

// authorizeOwner loads the poll and checks that the caller is its author. It
// is the single ownership predicate shared by every mutating operation.
func (s *pollService) authorizeOwner(ctx context.Context, id string, callerID uuid.UUID) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}
	if callerID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.AuthorID != callerID {
		return nil, domain.ErrNotPollAuthor
	}
	return poll, nil
}

func validOptionTexts(options []string) []string {
	var texts []string
	for _, opt := range options {
		text := strings.TrimSpace(opt)
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}
