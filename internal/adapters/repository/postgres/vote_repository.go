package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

const uniqueViolation = "23505"

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveVote relies on the unique index over (poll_id, option_id, user_id):
// when two identical submissions race, the second insert fails here and is
// reported as a duplicate rather than double-counted.
func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, option_id, user_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.PollID, vote.OptionID, vote.UserID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateVote
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

// DeleteVote removes the vote matching all three keys. Deleting a vote that
// does not exist is a no-op.
func (r *voteRepository) DeleteVote(ctx context.Context, pollID, optionID, userID uuid.UUID) error {
	query := `
		DELETE FROM votes WHERE poll_id = $1 AND option_id = $2 AND user_id = $3
	`
	_, err := r.db.ExecContext(ctx, query, pollID, optionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (r *voteRepository) ListUserVotes(ctx context.Context, pollID, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT option_id FROM votes WHERE poll_id = $1 AND user_id = $2`
	rows, err := r.db.QueryContext(ctx, query, pollID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user votes: %w", err)
	}
	defer rows.Close()

	optionIDs := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		optionIDs = append(optionIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return optionIDs, nil
}
