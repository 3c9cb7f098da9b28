package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,max=1000"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid4"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type CommentInfo struct {
	ID        uuid.UUID  `json:"id"`
	ReportID  uuid.UUID  `json:"report_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	IsEdited  bool       `json:"is_edited"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreateCommentResponse struct {
	Message   string    `json:"message"`
	CommentID uuid.UUID `json:"comment_id"`
}
