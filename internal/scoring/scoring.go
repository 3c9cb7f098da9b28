// Package scoring converts the set of votes on a report into per-type
// counts, a weighted net score, and a three-state verification label.
//
// The two formulas are deliberately independent: the net score is a
// contributor reputation signal (leaderboard, dashboard ranking) while
// the label is a per-report trust classification. They use different
// weights and must not be conflated.
package scoring

import "github.com/geotracker/backend/internal/models"

// Point weights per vote type, applied to the report owner's score.
const (
	PointsUpvote   = 10
	PointsVerify   = 15
	PointsDownvote = -5
	PointsDispute  = -3
)

// Verification label thresholds.
const (
	VerifiedUpvoteThreshold = 5
	VerifiedVerifyThreshold = 3
)

const (
	LabelVerified   = "verified"
	LabelPending    = "pending"
	LabelUnverified = "unverified"
)

// Counts holds per-type vote tallies for a single report.
type Counts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Verifies  int `json:"verifications"`
	Disputes  int `json:"disputes"`
}

// Tally counts votes by type. Unknown vote types are ignored.
func Tally(votes []models.Vote) Counts {
	var c Counts
	for _, v := range votes {
		switch v.VoteType {
		case models.VoteUpvote:
			c.Upvotes++
		case models.VoteDownvote:
			c.Downvotes++
		case models.VoteVerify:
			c.Verifies++
		case models.VoteDispute:
			c.Disputes++
		}
	}
	return c
}

// Total returns the number of votes across all types.
func (c Counts) Total() int {
	return c.Upvotes + c.Downvotes + c.Verifies + c.Disputes
}

// NetScore returns the weighted point total for a report's votes.
func (c Counts) NetScore() int {
	return c.Upvotes*PointsUpvote +
		c.Verifies*PointsVerify +
		c.Downvotes*PointsDownvote +
		c.Disputes*PointsDispute
}

// DeriveLabel classifies a report's trustworthiness from its vote
// counts: verified once enough upvotes or verifications accumulate,
// pending while any votes exist, unverified otherwise.
func DeriveLabel(c Counts) string {
	return DeriveLabelFrom(c.Upvotes, c.Verifies, c.Total())
}

// DeriveLabelFrom is the aggregate-count form of DeriveLabel, for
// callers that only have upvote/verify/total counts (e.g. a grouped
// SQL query).
func DeriveLabelFrom(upvotes, verifies, total int) string {
	if upvotes >= VerifiedUpvoteThreshold || verifies >= VerifiedVerifyThreshold {
		return LabelVerified
	}
	if total > 0 {
		return LabelPending
	}
	return LabelUnverified
}
