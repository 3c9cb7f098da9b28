package services

import (
	"fmt"
	"time"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Homepage returns the public landing-page counters.
func (s *StatsService) Homepage() (*dto.HomepageStats, error) {
	stats := &dto.HomepageStats{}
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := s.db.Model(&models.Report{}).
		Where("created_at >= ?", dayStart).
		Count(&stats.ReportsToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's reports: %w", err)
	}

	if err := s.db.Model(&models.Report{}).
		Where("created_at >= ? AND user_id IS NOT NULL", now.Add(-7*24*time.Hour)).
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	if err := s.db.Model(&models.Report{}).Count(&stats.TotalReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	if err := s.db.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return stats, nil
}

// Dashboard returns the authenticated user's personal counters and
// their position on the weighted leaderboard.
func (s *StatsService) Dashboard(userID uuid.UUID) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	if err := s.db.Model(&models.Report{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalReports).Error; err != nil {
		return nil, fmt.Errorf("failed to count user reports: %w", err)
	}

	args := append(pointWeights(), userID)
	err := s.db.Raw(`
		SELECT `+weightedPoints+` AS points
		FROM reports
		LEFT JOIN votes ON votes.report_id = reports.id
		WHERE reports.user_id = ?`, args...).Scan(&stats.TotalPoints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum user points: %w", err)
	}

	if err := s.db.Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalComments).Error; err != nil {
		return nil, fmt.Errorf("failed to count user comments: %w", err)
	}

	// Rank is 1 + the number of active users with a strictly higher score.
	rankArgs := append(pointWeights(), userID)
	err = s.db.Raw(`
		SELECT COALESCE(ranked.user_rank, 1)
		FROM (
			SELECT users.id,
				RANK() OVER (ORDER BY `+weightedPoints+` DESC) AS user_rank
			FROM users
			LEFT JOIN reports ON reports.user_id = users.id
			LEFT JOIN votes ON votes.report_id = reports.id
			WHERE users.is_active = TRUE
			GROUP BY users.id
		) AS ranked
		WHERE ranked.id = ?`, rankArgs...).Scan(&stats.Rank).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute user rank: %w", err)
	}
	if stats.Rank == 0 {
		stats.Rank = 1
	}

	return stats, nil
}
