package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a report. ParentID allows one-level-deep replies;
// the parent must belong to the same report. Deleting a parent cascades
// to its replies.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	ReportID  uuid.UUID  `gorm:"type:char(36);not null;index" json:"report_id"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index" json:"user_id"`
	ParentID  *uuid.UUID `gorm:"type:char(36);index" json:"parent_id,omitempty"`
	Content   string     `gorm:"not null;size:1000" json:"content"`
	IsEdited  bool       `gorm:"default:false" json:"is_edited"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User    User      `gorm:"foreignKey:UserID" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

// MaxCommentLength bounds comment content.
const MaxCommentLength = 1000
