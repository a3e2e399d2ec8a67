package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanVote(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	optionA := uuid.New()
	optionB := uuid.New()

	tests := []struct {
		name     string
		poll     Poll
		optionID uuid.UUID
		existing []uuid.UUID
		want     bool
	}{
		{
			name:     "active poll, no prior votes",
			poll:     Poll{IsActive: true},
			optionID: optionA,
			want:     true,
		},
		{
			name:     "inactive poll",
			poll:     Poll{IsActive: false},
			optionID: optionA,
			want:     false,
		},
		{
			name:     "expired poll",
			poll:     Poll{IsActive: true, ExpiresAt: &past},
			optionID: optionA,
			want:     false,
		},
		{
			name:     "expired poll blocks even existing option toggles",
			poll:     Poll{IsActive: true, ExpiresAt: &past},
			optionID: optionA,
			existing: []uuid.UUID{optionA},
			want:     false,
		},
		{
			name:     "future expiry still active",
			poll:     Poll{IsActive: true, ExpiresAt: &future},
			optionID: optionA,
			want:     true,
		},
		{
			name:     "toggle-off on already voted option",
			poll:     Poll{IsActive: true},
			optionID: optionA,
			existing: []uuid.UUID{optionA},
			want:     true,
		},
		{
			name:     "single choice with vote on another option",
			poll:     Poll{IsActive: true, AllowMultiple: false},
			optionID: optionB,
			existing: []uuid.UUID{optionA},
			want:     false,
		},
		{
			name:     "multi choice with vote on another option",
			poll:     Poll{IsActive: true, AllowMultiple: true},
			optionID: optionB,
			existing: []uuid.UUID{optionA},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanVote(&tt.poll, tt.optionID, tt.existing, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPollExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	assert.False(t, (&Poll{}).Expired(now), "no deadline never expires")
	assert.True(t, (&Poll{ExpiresAt: &past}).Expired(now))
	assert.False(t, (&Poll{ExpiresAt: &now}).Expired(past))
}
