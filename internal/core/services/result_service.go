package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pollhub/api/internal/core/domain"
	"github.com/pollhub/api/internal/core/ports"
)

type resultService struct {
	resultRepo ports.PollResultRepository
	cache      ports.ResultCache
}

// NewResultService serves poll stats through the result cache, falling back
// to the store on a miss or a cache failure.
func NewResultService(resultRepo ports.PollResultRepository, cache ports.ResultCache) ports.ResultService {
	return &resultService{
		resultRepo: resultRepo,
		cache:      cache,
	}
}

func (s *resultService) GetPollStats(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]domain.PollOptionStats, error) {
	if s.cache != nil {
		stats, err := s.cache.GetStats(ctx, pollID)
		if err != nil {
			log.Printf("result cache read failed for poll %s: %v", pollID, err)
		} else if stats != nil {
			return stats, nil
		}
	}

	stats, err := s.resultRepo.GetPollOptionStats(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, pollID, stats); err != nil {
			log.Printf("result cache write failed for poll %s: %v", pollID, err)
		}
	}

	return stats, nil
}
