package services

import (
	"fmt"
	"time"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"gorm.io/gorm"
)

type MetadataService struct {
	db *gorm.DB
}

func NewMetadataService(db *gorm.DB) *MetadataService {
	return &MetadataService{db: db}
}

// ReportTypes returns the active report types ordered by name.
func (s *MetadataService) ReportTypes() ([]models.ReportType, error) {
	var types []models.ReportType
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list report types: %w", err)
	}
	return types, nil
}

// Locations returns the active locations ordered by name.
func (s *MetadataService) Locations() ([]models.Location, error) {
	var locations []models.Location
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// Metadata bundles types, locations and aggregate statistics into the
// single payload the map frontend fetches on load.
func (s *MetadataService) Metadata() (*dto.MetadataResponse, error) {
	resp := &dto.MetadataResponse{}

	var err error
	if resp.ReportTypes, err = s.ReportTypes(); err != nil {
		return nil, err
	}
	if resp.Locations, err = s.Locations(); err != nil {
		return nil, err
	}
	if resp.ValidReportsInTime, err = s.validReportsSeries(); err != nil {
		return nil, err
	}
	if err = s.reportStatistics(&resp.Statistics); err != nil {
		return nil, err
	}
	if resp.TypeStatistics, err = s.typeStatistics(); err != nil {
		return nil, err
	}

	return resp, nil
}

// validReportsSeries counts verified reports per hour over the last
// two weeks, bucketed by valid_from.
func (s *MetadataService) validReportsSeries() ([]dto.TimeSeriesPoint, error) {
	since := time.Now().UTC().Add(-14 * 24 * time.Hour)

	var points []dto.TimeSeriesPoint
	err := s.db.Raw(`
		SELECT DATE_FORMAT(valid_from, '%Y-%m-%d %H:00:00') AS hour,
			COUNT(*) AS valid_reports
		FROM reports
		WHERE status = ? AND valid_from >= ?
		GROUP BY hour
		ORDER BY hour`, models.StatusVerified, since).Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query report time series: %w", err)
	}
	return points, nil
}

func (s *MetadataService) reportStatistics(stats *dto.ReportStatistics) error {
	err := s.db.Raw(`
		SELECT COUNT(*) AS total_reports,
			COUNT(CASE WHEN status = ? THEN 1 END) AS verified_reports,
			COUNT(CASE WHEN status = ? THEN 1 END) AS pending_reports,
			COUNT(CASE WHEN status = ? THEN 1 END) AS rejected_reports,
			COUNT(DISTINCT user_id) AS unique_users,
			COUNT(CASE WHEN created_at >= ? THEN 1 END) AS reports_last_24h
		FROM reports`,
		models.StatusVerified, models.StatusPending, models.StatusRejected,
		time.Now().UTC().Add(-24*time.Hour)).Scan(stats).Error
	if err != nil {
		return fmt.Errorf("failed to query report statistics: %w", err)
	}
	return nil
}

func (s *MetadataService) typeStatistics() ([]dto.TypeStatistics, error) {
	var stats []dto.TypeStatistics
	err := s.db.Raw(`
		SELECT report_types.name AS type_name,
			report_types.color AS color,
			COUNT(reports.id) AS count,
			COUNT(CASE WHEN reports.status = ? THEN 1 END) AS verified_count
		FROM report_types
		LEFT JOIN reports ON reports.type_id = report_types.id
		WHERE report_types.is_active = TRUE
		GROUP BY report_types.id, report_types.name, report_types.color
		ORDER BY count DESC`, models.StatusVerified).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query type statistics: %w", err)
	}
	return stats, nil
}
