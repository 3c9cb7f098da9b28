package scoring

import (
	"testing"

	"github.com/geotracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTally(t *testing.T) {
	votes := []models.Vote{
		{VoteType: models.VoteUpvote},
		{VoteType: models.VoteUpvote},
		{VoteType: models.VoteVerify},
		{VoteType: models.VoteDownvote},
		{VoteType: models.VoteDispute},
		{VoteType: "bogus"},
	}

	c := Tally(votes)

	assert.Equal(t, 2, c.Upvotes)
	assert.Equal(t, 1, c.Verifies)
	assert.Equal(t, 1, c.Downvotes)
	assert.Equal(t, 1, c.Disputes)
	assert.Equal(t, 5, c.Total())
}

func TestNetScore(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   int
	}{
		{"no votes", Counts{}, 0},
		{"single upvote", Counts{Upvotes: 1}, 10},
		{"single verify", Counts{Verifies: 1}, 15},
		{"single downvote", Counts{Downvotes: 1}, -5},
		{"single dispute", Counts{Disputes: 1}, -3},
		{"mixed", Counts{Upvotes: 3, Verifies: 2, Downvotes: 4, Disputes: 1}, 30 + 30 - 20 - 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.NetScore())
		})
	}
}

func TestDeriveLabel(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   string
	}{
		{"zero votes", Counts{}, LabelUnverified},
		{"five upvotes", Counts{Upvotes: 5}, LabelVerified},
		{"four upvotes two verifies", Counts{Upvotes: 4, Verifies: 2}, LabelPending},
		{"three verifies", Counts{Verifies: 3}, LabelVerified},
		{"single downvote", Counts{Downvotes: 1}, LabelPending},
		{"disputes only", Counts{Disputes: 7}, LabelPending},
		{"both thresholds met", Counts{Upvotes: 9, Verifies: 4}, LabelVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveLabel(tt.counts))
		})
	}
}
