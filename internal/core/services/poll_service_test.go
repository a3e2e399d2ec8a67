package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPollFixture(t *testing.T) (*fakePollRepo, ports.PollService) {
	t.Helper()
	repo := newFakePollRepo(newFakeVoteRepo())
	return repo, NewPollService(repo)
}

func strPtr(s string) *string { return &s }

func TestCreatePollValidation(t *testing.T) {
	ctx := context.Background()
	_, svc := newPollFixture(t)
	author := uuid.New()

	tests := []struct {
		name    string
		input   ports.CreatePollInput
		wantErr error
	}{
		{
			name:    "empty title",
			input:   ports.CreatePollInput{Title: "   ", Options: []string{"A", "B"}},
			wantErr: domain.ErrTitleRequired,
		},
		{
			name:    "single option",
			input:   ports.CreatePollInput{Title: "T", Options: []string{"A"}},
			wantErr: domain.ErrNotEnoughOptions,
		},
		{
			name:    "two blank and one valid option",
			input:   ports.CreatePollInput{Title: "T", Options: []string{"  ", "", "A"}},
			wantErr: domain.ErrNotEnoughOptions,
		},
		{
			name:    "no options",
			input:   ports.CreatePollInput{Title: "T"},
			wantErr: domain.ErrNotEnoughOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, author, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("anonymous author", func(t *testing.T) {
		_, err := svc.Create(ctx, uuid.Nil, ports.CreatePollInput{Title: "T", Options: []string{"A", "B"}})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestCreatePollKeepsOptionOrder(t *testing.T) {
	ctx := context.Background()
	_, svc := newPollFixture(t)
	author := uuid.New()

	poll, err := svc.Create(ctx, author, ports.CreatePollInput{
		Title:   "  Favorite day  ",
		Options: []string{" Mon ", "", "Tue"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Favorite day", poll.Title)
	assert.Equal(t, author, poll.AuthorID)
	assert.True(t, poll.IsActive)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "Mon", poll.Options[0].Text)
	assert.Equal(t, "Tue", poll.Options[1].Text)

	fetched, err := svc.GetPoll(ctx, poll.ID.String())
	require.NoError(t, err)
	require.Len(t, fetched.Options, 2)
	assert.Equal(t, poll.Options[0].ID, fetched.Options[0].ID)
	assert.Equal(t, poll.Options[1].ID, fetched.Options[1].ID)
}

func TestGetPollErrors(t *testing.T) {
	ctx := context.Background()
	_, svc := newPollFixture(t)

	_, err := svc.GetPoll(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidPollID)

	_, err = svc.GetPoll(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestListPollsCurrentUserOnly(t *testing.T) {
	ctx := context.Background()
	_, svc := newPollFixture(t)
	author := uuid.New()

	_, err := svc.Create(ctx, author, ports.CreatePollInput{Title: "Mine", Options: []string{"A", "B"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), ports.CreatePollInput{Title: "Theirs", Options: []string{"A", "B"}})
	require.NoError(t, err)

	mine, err := svc.ListPolls(ctx, author, ports.PollFilter{CurrentUserOnly: true})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)

	// Anonymous caller with currentUserOnly gets an empty list, not an error.
	anon, err := svc.ListPolls(ctx, uuid.Nil, ports.PollFilter{CurrentUserOnly: true})
	require.NoError(t, err)
	assert.Empty(t, anon)
}

func TestUpdatePollOwnership(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPollFixture(t)
	author := uuid.New()

	poll, err := svc.Create(ctx, author, ports.CreatePollInput{Title: "Original", Options: []string{"A", "B"}})
	require.NoError(t, err)

	err = svc.Update(ctx, poll.ID.String(), uuid.New(), ports.PollUpdate{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, domain.ErrNotPollAuthor)
	assert.Equal(t, "Original", repo.polls[poll.ID].Title, "failed update leaves the poll unchanged")

	err = svc.Update(ctx, poll.ID.String(), uuid.Nil, ports.PollUpdate{Title: strPtr("Anon")})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	err = svc.Update(ctx, poll.ID.String(), author, ports.PollUpdate{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", repo.polls[poll.ID].Title)
}

func TestUpdatePollPartialFields(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPollFixture(t)
	author := uuid.New()
	expiry := time.Now().Add(24 * time.Hour)

	poll, err := svc.Create(ctx, author, ports.CreatePollInput{
		Title:       "Partial",
		Description: "keep me",
		Options:     []string{"A", "B"},
		ExpiresAt:   &expiry,
	})
	require.NoError(t, err)

	// Absent fields stay untouched.
	allow := true
	require.NoError(t, svc.Update(ctx, poll.ID.String(), author, ports.PollUpdate{AllowMultiple: &allow}))
	stored := repo.polls[poll.ID]
	assert.Equal(t, "Partial", stored.Title)
	assert.Equal(t, "keep me", stored.Description)
	assert.True(t, stored.AllowMultiple)
	require.NotNil(t, stored.ExpiresAt)

	// Explicit empty description clears it; ClearExpiry drops the deadline.
	require.NoError(t, svc.Update(ctx, poll.ID.String(), author, ports.PollUpdate{
		Description: strPtr(""),
		ClearExpiry: true,
	}))
	stored = repo.polls[poll.ID]
	assert.Equal(t, "", stored.Description)
	assert.Nil(t, stored.ExpiresAt)

	// A blank replacement title is rejected.
	err = svc.Update(ctx, poll.ID.String(), author, ports.PollUpdate{Title: strPtr("   ")})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestUpdatePollOptionReplacement(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPollFixture(t)
	author := uuid.New()

	poll, err := svc.Create(ctx, author, ports.CreatePollInput{Title: "Options", Options: []string{"A", "B"}})
	require.NoError(t, err)
	originalIDs := []uuid.UUID{poll.Options[0].ID, poll.Options[1].ID}

	voter := uuid.New()
	require.NoError(t, repo.votes.SaveVote(ctx, &domain.Vote{
		ID: uuid.New(), PollID: poll.ID, OptionID: originalIDs[0], UserID: voter,
	}))

	// Fewer than two valid replacements leaves the options and votes untouched.
	require.NoError(t, svc.Update(ctx, poll.ID.String(), author, ports.PollUpdate{Options: []string{"Only", "  "}}))
	stored := repo.polls[poll.ID]
	require.Len(t, stored.Options, 2)
	assert.Equal(t, originalIDs[0], stored.Options[0].ID)
	kept, err := repo.votes.ListUserVotes(ctx, poll.ID, voter)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// A valid replacement swaps the set wholesale with fresh ids and resets
	// the poll's votes through the cascade.
	require.NoError(t, svc.Update(ctx, poll.ID.String(), author, ports.PollUpdate{Options: []string{"X", "Y", "Z"}}))
	stored = repo.polls[poll.ID]
	require.Len(t, stored.Options, 3)
	assert.Equal(t, "X", stored.Options[0].Text)
	assert.NotContains(t, originalIDs, stored.Options[0].ID)

	remaining, err := repo.votes.ListUserVotes(ctx, poll.ID, voter)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeletePoll(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPollFixture(t)
	author := uuid.New()

	poll, err := svc.Create(ctx, author, ports.CreatePollInput{Title: "Doomed", Options: []string{"A", "B"}})
	require.NoError(t, err)

	err = svc.Delete(ctx, poll.ID.String(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotPollAuthor)

	require.NoError(t, svc.Delete(ctx, poll.ID.String(), author))
	assert.NotContains(t, repo.polls, poll.ID)

	_, err = svc.GetPoll(ctx, poll.ID.String())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}
