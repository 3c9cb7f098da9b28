package dto

import (
	"time"

	"github.com/geotracker/backend/internal/scoring"
	"github.com/google/uuid"
)

type VoteRequest struct {
	VoteType string `json:"vote_type" validate:"required,oneof=upvote downvote verify dispute"`
	Comment  string `json:"comment" validate:"max=500"`
}

type VoteInfo struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	VoteType  string    `json:"vote_type"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type VotesResponse struct {
	Votes             []VoteInfo     `json:"votes"`
	Summary           scoring.Counts `json:"summary"`
	NetScore          int            `json:"net_score"`
	VerificationLabel string         `json:"verification_label"`
}

// ReportVoteSummary is one row of the site-wide voting overview: a
// report with its per-type vote counts.
type ReportVoteSummary struct {
	ReportID      uuid.UUID `gorm:"column:id" json:"id"`
	Title         string    `gorm:"column:title" json:"title,omitempty"`
	TypeName      string    `gorm:"column:type_name" json:"type_name,omitempty"`
	TotalVotes    int       `gorm:"column:total_votes" json:"total_votes"`
	Upvotes       int       `gorm:"column:upvotes" json:"upvotes"`
	Downvotes     int       `gorm:"column:downvotes" json:"downvotes"`
	Verifications int       `gorm:"column:verifications" json:"verifications"`
	Disputes      int       `gorm:"column:disputes" json:"disputes"`
}

type VotingSummaryResponse struct {
	Summary []ReportVoteSummary `json:"summary"`
}
