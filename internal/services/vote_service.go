package services

import (
	"errors"
	"fmt"

	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/geotracker/backend/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVoteNotFound = errors.New("vote not found or access denied")

type VoteService struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewVoteService(db *gorm.DB, rec *audit.Recorder) *VoteService {
	return &VoteService{db: db, audit: rec}
}

// Cast records the user's vote on a report. A second vote by the same
// user replaces the first, so counts always reflect current opinions.
func (s *VoteService) Cast(reportID, userID uuid.UUID, req *dto.VoteRequest, ip string) error {
	if !models.ValidVoteType(req.VoteType) {
		return errors.New("invalid vote type")
	}

	var report models.Report
	if err := s.db.Select("id").First(&report, "id = ?", reportID).Error; err != nil {
		return ErrReportNotFound
	}

	var existing models.Vote
	err := s.db.Where("report_id = ? AND user_id = ?", reportID, userID).First(&existing).Error
	switch {
	case err == nil:
		oldValues := map[string]interface{}{"vote_type": existing.VoteType}
		updates := map[string]interface{}{
			"vote_type":  req.VoteType,
			"comment":    req.Comment,
			"created_at": gorm.Expr("NOW()"),
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update vote: %w", err)
		}
		s.audit.Record(&userID, audit.ActionUpdateVote, "votes", existing.ID.String(),
			oldValues, map[string]interface{}{"vote_type": req.VoteType, "comment": req.Comment}, ip)

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{
			ID:       uuid.New(),
			ReportID: reportID,
			UserID:   userID,
			VoteType: req.VoteType,
			Comment:  req.Comment,
		}
		if err := s.db.Create(&vote).Error; err != nil {
			return fmt.Errorf("failed to create vote: %w", err)
		}
		s.audit.Record(&userID, audit.ActionCreateVote, "votes", vote.ID.String(), nil,
			map[string]interface{}{"report_id": reportID, "vote_type": req.VoteType, "comment": req.Comment}, ip)

	default:
		return fmt.Errorf("failed to look up vote: %w", err)
	}

	return nil
}

// List returns a report's votes with the tally, net score, and the
// derived verification label.
func (s *VoteService) List(reportID uuid.UUID) (*dto.VotesResponse, error) {
	var report models.Report
	if err := s.db.Select("id").First(&report, "id = ?", reportID).Error; err != nil {
		return nil, ErrReportNotFound
	}

	var votes []models.Vote
	if err := s.db.Preload("User").Where("report_id = ?", reportID).
		Order("created_at DESC").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	resp := dto.VotesResponse{Votes: make([]dto.VoteInfo, 0, len(votes))}
	for _, v := range votes {
		resp.Votes = append(resp.Votes, toVoteInfo(&v))
	}

	counts := scoring.Tally(votes)
	resp.Summary = counts
	resp.NetScore = counts.NetScore()
	resp.VerificationLabel = scoring.DeriveLabel(counts)
	return &resp, nil
}

// Summary returns the 50 most-voted reports with per-type counts.
func (s *VoteService) Summary() ([]dto.ReportVoteSummary, error) {
	var rows []dto.ReportVoteSummary
	err := s.db.Model(&models.Report{}).
		Select(`reports.id, reports.title, report_types.name AS type_name,
			COUNT(votes.id) AS total_votes,
			COUNT(CASE WHEN votes.vote_type = 'upvote' THEN 1 END) AS upvotes,
			COUNT(CASE WHEN votes.vote_type = 'downvote' THEN 1 END) AS downvotes,
			COUNT(CASE WHEN votes.vote_type = 'verify' THEN 1 END) AS verifications,
			COUNT(CASE WHEN votes.vote_type = 'dispute' THEN 1 END) AS disputes`).
		Joins("LEFT JOIN report_types ON report_types.id = reports.type_id").
		Joins("LEFT JOIN votes ON votes.report_id = reports.id").
		Group("reports.id, reports.title, report_types.name").
		Order("total_votes DESC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query voting summary: %w", err)
	}
	return rows, nil
}

// Remove deletes the caller's own vote.
func (s *VoteService) Remove(voteID, userID uuid.UUID, ip string) error {
	var vote models.Vote
	if err := s.db.Where("id = ? AND user_id = ?", voteID, userID).First(&vote).Error; err != nil {
		return ErrVoteNotFound
	}

	if err := s.db.Delete(&vote).Error; err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	s.audit.Record(&userID, audit.ActionDeleteVote, "votes", voteID.String(),
		map[string]interface{}{"vote_type": vote.VoteType, "comment": vote.Comment}, nil, ip)
	return nil
}
