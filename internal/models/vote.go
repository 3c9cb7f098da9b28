package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote holds one user's current opinion on a report. The unique index
// on (report_id, user_id) guarantees at most one live vote per pair;
// casting again replaces the previous vote.
type Vote struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ReportID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_votes_report_user" json:"report_id"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_votes_report_user" json:"user_id"`
	VoteType  string    `gorm:"not null;size:20" json:"vote_type"`
	Comment   string    `gorm:"size:500" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

const (
	VoteUpvote   = "upvote"
	VoteDownvote = "downvote"
	VoteVerify   = "verify"
	VoteDispute  = "dispute"
)

func ValidVoteType(t string) bool {
	switch t {
	case VoteUpvote, VoteDownvote, VoteVerify, VoteDispute:
		return true
	}
	return false
}
