package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

func (r *pollResultRepository) GetPollOptionStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	// Counts come straight from the votes table so the stats never lag a
	// summarizer run; poll_results stays a projection for batch consumers.
	query := `
		SELECT o.id, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poll stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	var total int64
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		counts[optionID] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats: %w", err)
	}

	result := make(map[uuid.UUID]domain.PollOptionStats, len(counts))
	for optionID, count := range counts {
		percentage := 0.0
		if total > 0 {
			percentage = (float64(count) / float64(total)) * 100
		}
		result[optionID] = domain.PollOptionStats{
			VoteCount:  count,
			Percentage: percentage,
		}
	}

	return result, nil
}

func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	query := `
		INSERT INTO poll_results (poll_id, option_id, vote_count, last_updated_at)
		SELECT poll_id, option_id, COUNT(*), NOW()
		FROM votes
		WHERE poll_id = $1
		GROUP BY poll_id, option_id
		ON CONFLICT (poll_id, option_id) DO UPDATE
		SET vote_count = EXCLUDED.vote_count,
		    last_updated_at = NOW();
	`

	if _, err := r.db.ExecContext(ctx, query, pollID); err != nil {
		return fmt.Errorf("failed to summarize votes for poll %s: %w", pollID, err)
	}

	return nil
}
