package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a geotagged incident observation. Its validity window
// [ValidFrom, ValidUntil] bounds the time during which the report is
// considered current; staleness is a query-time predicate, never an
// active transition.
type Report struct {
	ID              uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          *uuid.UUID `gorm:"type:char(36);index" json:"user_id,omitempty"`
	TypeID          uuid.UUID  `gorm:"type:char(36);not null;index" json:"type_id"`
	LocationID      *uuid.UUID `gorm:"type:char(36);index" json:"location_id,omitempty"`
	Latitude        float64    `gorm:"type:decimal(10,8);not null;index" json:"lat"`
	Longitude       float64    `gorm:"type:decimal(11,8);not null;index" json:"lon"`
	Title           string     `gorm:"size:255" json:"title,omitempty"`
	Description     string     `gorm:"size:2000" json:"description,omitempty"`
	ValidFrom       time.Time  `gorm:"not null;index" json:"valid_from"`
	ValidUntil      time.Time  `gorm:"not null;index" json:"valid_until"`
	Status          string     `gorm:"not null;size:20;default:'pending';index" json:"status"`
	ConfidenceLevel string     `gorm:"not null;size:10;default:'medium'" json:"confidence_level"`
	MediaURL        string     `gorm:"size:500" json:"media_url,omitempty"`
	SourceURL       string     `gorm:"size:500" json:"source_url,omitempty"`
	IPAddress       string     `gorm:"size:45" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Type     ReportType `gorm:"foreignKey:TypeID" json:"-"`
	User     *User      `gorm:"foreignKey:UserID" json:"-"`
	Votes    []Vote     `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment  `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// DefaultValidity is applied when a report is created without an
// explicit valid_until.
const DefaultValidity = 3 * time.Hour

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusExpired:
		return true
	}
	return false
}

func ValidConfidence(c string) bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}
