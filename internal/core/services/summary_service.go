package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/pollhub/api/internal/core/ports"
)

type summaryService struct {
	pollRepo       ports.PollRepository
	pollResultRepo ports.PollResultRepository
	cache          ports.ResultCache
}

// NewSummaryService builds the batch vote summarizer. cache may be nil.
func NewSummaryService(pollRepo ports.PollRepository, pollResultRepo ports.PollResultRepository, cache ports.ResultCache) ports.SummaryService {
	return &summaryService{
		pollRepo:       pollRepo,
		pollResultRepo: pollResultRepo,
		cache:          cache,
	}
}

func (s *summaryService) SummarizeAllVotes(ctx context.Context) error {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all polls: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(polls))

	for _, poll := range polls {
		wg.Add(1)
		go func(pID [16]byte) { // passing ID by value (uuid.UUID is [16]byte) to avoid closure issues
			defer wg.Done()
			if err := s.pollResultRepo.SummarizeVotes(ctx, pID); err != nil {
				errChan <- fmt.Errorf("failed to summarize poll %s: %w", pID, err)
				return
			}
			if s.cache != nil {
				// A fresh summary supersedes whatever view is cached.
				_ = s.cache.Invalidate(ctx, pID)
			}
		}(poll.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}
