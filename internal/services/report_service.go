package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/config"
	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/geotracker/backend/internal/scoring"
	"github.com/geotracker/backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrNotOwner          = errors.New("forbidden: not your report")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidLatitude   = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude  = errors.New("longitude must be between -180 and 180")
	ErrInvalidValidity   = errors.New("valid_until must not precede valid_from")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrFileTooLarge      = errors.New("uploaded file exceeds the size limit")
)

// ReportQuery scopes a bounding-box report lookup. Time is ignored
// when ShowAll is set.
type ReportQuery struct {
	LatMin  float64
	LonMin  float64
	LatMax  float64
	LonMax  float64
	Time    time.Time
	ShowAll bool
	Status  string
	TypeID  *uuid.UUID
}

type ReportService struct {
	db    *gorm.DB
	cfg   *config.Config
	store storage.Storage
	audit *audit.Recorder
}

func NewReportService(db *gorm.DB, cfg *config.Config, store storage.Storage, rec *audit.Recorder) *ReportService {
	return &ReportService{db: db, cfg: cfg, store: store, audit: rec}
}

const reportRowColumns = `
	reports.id, reports.latitude, reports.longitude, reports.title, reports.description,
	reports.valid_from, reports.valid_until, reports.status, reports.confidence_level,
	reports.media_url, reports.source_url, reports.created_at, reports.updated_at,
	report_types.name AS type_name, report_types.color AS type_color,
	users.username AS reporter_username,
	COUNT(DISTINCT votes.id) AS vote_count,
	COUNT(DISTINCT CASE WHEN votes.vote_type = 'upvote' THEN votes.id END) AS upvote_count,
	COUNT(DISTINCT CASE WHEN votes.vote_type = 'verify' THEN votes.id END) AS verify_count,
	COUNT(DISTINCT comments.id) AS comment_count`

func (s *ReportService) rowQuery() *gorm.DB {
	return s.db.Model(&models.Report{}).
		Select(reportRowColumns).
		Joins("LEFT JOIN report_types ON report_types.id = reports.type_id").
		Joins("LEFT JOIN users ON users.id = reports.user_id").
		Joins("LEFT JOIN votes ON votes.report_id = reports.id").
		Joins("LEFT JOIN comments ON comments.report_id = reports.id").
		Group("reports.id, report_types.name, report_types.color, users.username").
		Order("reports.created_at DESC")
}

// Query returns every report whose point lies inside the bounding
// rectangle and, unless ShowAll is set, whose validity interval
// contains the requested time (inclusive on both bounds).
func (s *ReportService) Query(q ReportQuery) ([]dto.ReportRow, error) {
	if q.Status != "" && !models.ValidStatus(q.Status) {
		return nil, ErrInvalidStatus
	}

	query := s.rowQuery().
		Where("reports.latitude BETWEEN ? AND ?", q.LatMin, q.LatMax).
		Where("reports.longitude BETWEEN ? AND ?", q.LonMin, q.LonMax)

	if !q.ShowAll {
		query = query.Where("reports.valid_from <= ? AND reports.valid_until >= ?", q.Time, q.Time)
	}
	if q.Status != "" {
		query = query.Where("reports.status = ?", q.Status)
	}
	if q.TypeID != nil {
		query = query.Where("reports.type_id = ?", *q.TypeID)
	}

	var rows []dto.ReportRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	annotateLabels(rows)
	return rows, nil
}

// ListMine returns all reports created by the given user.
func (s *ReportService) ListMine(userID uuid.UUID) ([]dto.ReportRow, error) {
	var rows []dto.ReportRow
	if err := s.rowQuery().Where("reports.user_id = ?", userID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	annotateLabels(rows)
	return rows, nil
}

// Get returns a single report with its full vote and comment bodies.
func (s *ReportService) Get(id uuid.UUID) (*dto.ReportDetail, error) {
	var row dto.ReportRow
	result := s.rowQuery().Where("reports.id = ?", id).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query report: %w", result.Error)
	}
	if result.RowsAffected == 0 || row.ID == uuid.Nil {
		return nil, ErrReportNotFound
	}

	detail := dto.ReportDetail{ReportRow: row}

	if err := s.db.Model(&models.Location{}).
		Select("locations.name").
		Joins("JOIN reports ON reports.location_id = locations.id").
		Where("reports.id = ?", id).
		Limit(1).
		Scan(&detail.LocationName).Error; err != nil {
		return nil, fmt.Errorf("failed to load location: %w", err)
	}

	var votes []models.Vote
	if err := s.db.Preload("User").Where("report_id = ?", id).
		Order("created_at DESC").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}
	for _, v := range votes {
		detail.Votes = append(detail.Votes, toVoteInfo(&v))
	}

	var comments []models.Comment
	if err := s.db.Preload("User").Where("report_id = ?", id).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	for _, cm := range comments {
		detail.Comments = append(detail.Comments, toCommentInfo(&cm))
	}

	counts := scoring.Tally(votes)
	detail.VerificationLabel = scoring.DeriveLabel(counts)
	return &detail, nil
}

// Create inserts a new report. It always starts pending regardless of
// the caller's role.
func (s *ReportService) Create(ctx context.Context, userID *uuid.UUID, req *dto.CreateReportRequest, photo *multipart.FileHeader, ip string) (*models.Report, error) {
	if req.Lat == nil || *req.Lat < -90 || *req.Lat > 90 {
		return nil, ErrInvalidLatitude
	}
	if req.Lon == nil || *req.Lon < -180 || *req.Lon > 180 {
		return nil, ErrInvalidLongitude
	}
	lat, lon := *req.Lat, *req.Lon

	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return nil, ErrInvalidReportType
	}
	var reportType models.ReportType
	if err := s.db.Where("id = ? AND is_active = ?", typeID, true).First(&reportType).Error; err != nil {
		return nil, ErrInvalidReportType
	}

	var locationID *uuid.UUID
	if req.LocationID != "" {
		id, err := uuid.Parse(req.LocationID)
		if err != nil {
			return nil, ErrInvalidLocation
		}
		var location models.Location
		if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&location).Error; err != nil {
			return nil, ErrInvalidLocation
		}
		locationID = &id
	}

	validFrom, validUntil, err := resolveValidity(req.ValidFrom, req.ValidUntil, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	mediaURL, err := s.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	sourceURL := req.SourceURL
	if mediaURL == "" && req.MediaURL != "" {
		sourceURL = req.MediaURL
	}

	confidence := req.ConfidenceLevel
	if confidence == "" {
		confidence = models.ConfidenceMedium
	}

	report := models.Report{
		ID:              uuid.New(),
		UserID:          userID,
		TypeID:          typeID,
		LocationID:      locationID,
		Latitude:        lat,
		Longitude:       lon,
		Title:           req.Title,
		Description:     req.Description,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		Status:          models.StatusPending,
		ConfidenceLevel: confidence,
		MediaURL:        mediaURL,
		SourceURL:       sourceURL,
		IPAddress:       ip,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	if userID != nil {
		s.audit.Record(userID, audit.ActionCreate, "reports", report.ID.String(), nil,
			map[string]interface{}{
				"type_id": typeID, "lat": lat, "lon": lon,
				"title": req.Title, "confidence_level": confidence,
			}, ip)
	}
	return &report, nil
}

// Edit updates content fields of a caller-owned report. Status is not
// editable through this path.
func (s *ReportService) Edit(ctx context.Context, id, userID uuid.UUID, req *dto.EditReportRequest, photo *multipart.FileHeader, ip string) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return ErrReportNotFound
	}
	if report.UserID == nil || *report.UserID != userID {
		return ErrNotOwner
	}

	oldValues := map[string]interface{}{
		"title": report.Title, "description": report.Description,
		"type_id": report.TypeID, "confidence_level": report.ConfidenceLevel,
		"media_url": report.MediaURL,
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ConfidenceLevel != nil {
		updates["confidence_level"] = *req.ConfidenceLevel
	}
	if req.TypeID != nil {
		typeID, err := uuid.Parse(*req.TypeID)
		if err != nil {
			return ErrInvalidReportType
		}
		var reportType models.ReportType
		if err := s.db.Where("id = ? AND is_active = ?", typeID, true).First(&reportType).Error; err != nil {
			return ErrInvalidReportType
		}
		updates["type_id"] = typeID
	}

	oldMedia := report.MediaURL
	if photo != nil && photo.Size > 0 {
		mediaURL, err := s.storePhoto(ctx, photo)
		if err != nil {
			return err
		}
		updates["media_url"] = mediaURL
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}

	// The old photo is only removed once the row points at the new one.
	if newMedia, ok := updates["media_url"]; ok && oldMedia != "" && newMedia != oldMedia {
		if err := s.store.Delete(ctx, oldMedia); err != nil {
			slog.Error("failed to delete replaced photo", "error", err, "media_url", oldMedia)
		}
	}

	s.audit.Record(&userID, audit.ActionUpdate, "reports", id.String(), oldValues, updates, ip)
	return nil
}

// UpdateStatus transitions a report to any of the four statuses. No
// transition-graph restriction applies.
func (s *ReportService) UpdateStatus(id uuid.UUID, actorID uuid.UUID, status, ip string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}

	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return ErrReportNotFound
	}

	oldValues := map[string]interface{}{"status": report.Status}
	if err := s.db.Model(&report).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	s.audit.Record(&actorID, audit.ActionUpdateStatus, "reports", id.String(),
		oldValues, map[string]interface{}{"status": status}, ip)
	return nil
}

// Delete removes a report and cascades to its votes and comments.
// Admins may delete any report; everyone else only their own.
func (s *ReportService) Delete(ctx context.Context, id uuid.UUID, actor *models.User, ip string) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return ErrReportNotFound
	}
	if actor.Role != models.RoleAdmin && (report.UserID == nil || *report.UserID != actor.ID) {
		return ErrNotOwner
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if report.MediaURL != "" {
		if err := s.store.Delete(ctx, report.MediaURL); err != nil {
			slog.Error("failed to delete report photo", "error", err, "media_url", report.MediaURL)
		}
	}

	s.audit.Record(&actor.ID, audit.ActionDelete, "reports", id.String(),
		map[string]interface{}{"title": report.Title, "status": report.Status}, nil, ip)
	return nil
}

// storePhoto normalizes and persists an uploaded photo, returning the
// stored URL or "" when no photo was attached.
func (s *ReportService) storePhoto(ctx context.Context, photo *multipart.FileHeader) (string, error) {
	if photo == nil || photo.Size == 0 {
		return "", nil
	}
	if photo.Size > s.cfg.MaxUploadSizeMB*1024*1024 {
		return "", ErrFileTooLarge
	}

	f, err := photo.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	normalized, err := storage.NormalizeImage(f)
	if err != nil {
		return "", err
	}

	name := storage.RandomFilename()
	url, err := s.store.Save(ctx, name, bytes.NewReader(normalized), int64(len(normalized)))
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}
	return url, nil
}

// resolveValidity applies the default validity window: valid_from
// defaults to now, valid_until to valid_from + 3h.
func resolveValidity(validFrom, validUntil int64, now time.Time) (time.Time, time.Time, error) {
	from := now
	if validFrom > 0 {
		from = time.Unix(validFrom, 0).UTC()
	}
	until := from.Add(models.DefaultValidity)
	if validUntil > 0 {
		until = time.Unix(validUntil, 0).UTC()
	}
	if until.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidValidity
	}
	return from, until, nil
}

func annotateLabels(rows []dto.ReportRow) {
	for i := range rows {
		rows[i].VerificationLabel = scoring.DeriveLabelFrom(
			rows[i].UpvoteCount, rows[i].VerifyCount, rows[i].VoteCount)
	}
}

func toVoteInfo(v *models.Vote) dto.VoteInfo {
	return dto.VoteInfo{
		ID:        v.ID,
		UserID:    v.UserID,
		Username:  v.User.Username,
		VoteType:  v.VoteType,
		Comment:   v.Comment,
		CreatedAt: v.CreatedAt,
	}
}

func toCommentInfo(c *models.Comment) dto.CommentInfo {
	return dto.CommentInfo{
		ID:        c.ID,
		ReportID:  c.ReportID,
		UserID:    c.UserID,
		Username:  c.User.Username,
		ParentID:  c.ParentID,
		Content:   c.Content,
		IsEdited:  c.IsEdited,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
