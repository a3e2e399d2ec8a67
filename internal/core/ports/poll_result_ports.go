package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
)

type PollResultRepository interface {
	SummarizeVotes(ctx context.Context, pollID uuid.UUID) error
	GetPollOptionStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error)
}

// ResultCache holds rendered poll stats so the results view does not hit the
// store on every read. Invalidation is best-effort.
type ResultCache interface {
	GetStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error)
	SetStats(ctx context.Context, pollID uuid.UUID, stats map[uuid.UUID]domain.PollOptionStats) error
	Invalidate(ctx context.Context, pollID uuid.UUID) error
}

type ResultService interface {
	GetPollStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error)
}

type SummaryService interface {
	SummarizeAllVotes(ctx context.Context) error
}
