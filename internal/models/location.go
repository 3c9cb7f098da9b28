package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is an optional named region a report can be attached to.
type Location struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Country     string    `gorm:"size:100" json:"country,omitempty"`
	Region      string    `gorm:"size:100" json:"region,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
