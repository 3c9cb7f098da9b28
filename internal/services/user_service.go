package services

import (
	"fmt"

	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/geotracker/backend/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewUserService(db *gorm.DB, rec *audit.Recorder) *UserService {
	return &UserService{db: db, audit: rec}
}

// weightedPoints is the reputation-score expression shared by the
// leaderboard and dashboard rank queries. Weights are bound as
// parameters from the scoring package.
const weightedPoints = `COALESCE(SUM(CASE
	WHEN votes.vote_type = 'upvote' THEN ?
	WHEN votes.vote_type = 'verify' THEN ?
	WHEN votes.vote_type = 'downvote' THEN ?
	WHEN votes.vote_type = 'dispute' THEN ?
	ELSE 0 END), 0)`

func pointWeights() []interface{} {
	return []interface{}{
		scoring.PointsUpvote, scoring.PointsVerify,
		scoring.PointsDownvote, scoring.PointsDispute,
	}
}

// List returns all users, newest first. Admin surface.
func (s *UserService) List() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(&u))
	}
	return resp, nil
}

// UpdateStatus toggles a user's is_active flag. Admin surface;
// deactivated users cannot log in or use existing tokens.
func (s *UserService) UpdateStatus(id uuid.UUID, isActive bool, adminID uuid.UUID, ip string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return ErrUserNotFound
	}

	oldValues := map[string]interface{}{"is_active": user.IsActive}
	if err := s.db.Model(&user).Update("is_active", isActive).Error; err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	s.audit.Record(&adminID, audit.ActionUpdateStatus, "users", id.String(),
		oldValues, map[string]interface{}{"is_active": isActive}, ip)
	return nil
}

// Leaderboard ranks active users by the weighted net score of votes
// received on their reports.
func (s *UserService) Leaderboard(limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var entries []dto.LeaderboardEntry
	args := append(pointWeights(), limit)
	err := s.db.Raw(`
		SELECT users.username,
			`+weightedPoints+` AS points,
			COUNT(DISTINCT reports.id) AS reports
		FROM users
		LEFT JOIN reports ON reports.user_id = users.id
		LEFT JOIN votes ON votes.report_id = reports.id
		WHERE users.is_active = TRUE
		GROUP BY users.id, users.username
		ORDER BY points DESC
		LIMIT ?`, args...).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return entries, nil
}
