package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found or access denied")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrEmptyContent    = errors.New("comment content is required")
)

type CommentService struct {
	db    *gorm.DB
	audit *audit.Recorder
}

func NewCommentService(db *gorm.DB, rec *audit.Recorder) *CommentService {
	return &CommentService{db: db, audit: rec}
}

// Add creates a comment on a report. A parent, when given, must be a
// comment on the same report (one-level threading).
func (s *CommentService) Add(reportID, userID uuid.UUID, req *dto.CreateCommentRequest, ip string) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var report models.Report
	if err := s.db.Select("id").First(&report, "id = ?", reportID).Error; err != nil {
		return nil, ErrReportNotFound
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		id, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		var parent models.Comment
		if err := s.db.Where("id = ? AND report_id = ?", id, reportID).First(&parent).Error; err != nil {
			return nil, ErrParentNotFound
		}
		parentID = &id
	}

	comment := models.Comment{
		ID:       uuid.New(),
		ReportID: reportID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.audit.Record(&userID, audit.ActionCreate, "comments", comment.ID.String(), nil,
		map[string]interface{}{"report_id": reportID, "parent_id": parentID, "content": content}, ip)
	return &comment, nil
}

// List returns a report's comments in chronological order.
func (s *CommentService) List(reportID uuid.UUID) ([]dto.CommentInfo, error) {
	var report models.Report
	if err := s.db.Select("id").First(&report, "id = ?", reportID).Error; err != nil {
		return nil, ErrReportNotFound
	}

	var comments []models.Comment
	if err := s.db.Preload("User").Where("report_id = ?", reportID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	infos := make([]dto.CommentInfo, 0, len(comments))
	for _, c := range comments {
		infos = append(infos, toCommentInfo(&c))
	}
	return infos, nil
}

// Update edits the caller's own comment and marks it edited.
func (s *CommentService) Update(commentID, userID uuid.UUID, req *dto.UpdateCommentRequest, ip string) error {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return ErrEmptyContent
	}

	var comment models.Comment
	if err := s.db.Where("id = ? AND user_id = ?", commentID, userID).First(&comment).Error; err != nil {
		return ErrCommentNotFound
	}

	oldValues := map[string]interface{}{"content": comment.Content}
	updates := map[string]interface{}{"content": content, "is_edited": true}
	if err := s.db.Model(&comment).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	s.audit.Record(&userID, audit.ActionUpdate, "comments", commentID.String(),
		oldValues, map[string]interface{}{"content": content}, ip)
	return nil
}

// Delete removes the caller's own comment; replies cascade.
func (s *CommentService) Delete(commentID, userID uuid.UUID, ip string) error {
	var comment models.Comment
	if err := s.db.Where("id = ? AND user_id = ?", commentID, userID).First(&comment).Error; err != nil {
		return ErrCommentNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.audit.Record(&userID, audit.ActionDelete, "comments", commentID.String(),
		map[string]interface{}{"content": comment.Content}, nil, ip)
	return nil
}
