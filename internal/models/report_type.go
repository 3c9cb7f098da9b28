package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportType is an enumerated report category (e.g. CONSTRUCTION,
// BLOCKADE). Inactive types cannot be referenced by new reports.
type ReportType struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:100;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Color       string    `gorm:"size:7" json:"color,omitempty"`
	Icon        string    `gorm:"size:16" json:"icon,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
