package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest is accepted as JSON or multipart form (with an
// optional "mediafile" part carrying the photo). Lat/Lon are pointers
// so that a missing coordinate is distinguishable from a legitimate 0.
type CreateReportRequest struct {
	Lat             *float64 `json:"lat" form:"lat" validate:"required"`
	Lon             *float64 `json:"lon" form:"lon" validate:"required"`
	TypeID          string   `json:"type_id" form:"type_id" validate:"required,uuid4"`
	LocationID      string   `json:"location_id" form:"location_id" validate:"omitempty,uuid4"`
	Title           string   `json:"title" form:"title" validate:"max=255"`
	Description     string   `json:"description" form:"description" validate:"max=2000"`
	ValidFrom       int64    `json:"validfrom" form:"validfrom"`
	ValidUntil      int64    `json:"validuntil" form:"validuntil"`
	ConfidenceLevel string   `json:"confidence_level" form:"confidence_level" validate:"omitempty,oneof=low medium high"`
	MediaURL        string   `json:"mediaurl" form:"mediaurl" validate:"omitempty,url"`
	SourceURL       string   `json:"source_url" form:"source_url" validate:"omitempty,url"`
}

type EditReportRequest struct {
	Title           *string `json:"title" form:"title" validate:"omitempty,max=255"`
	Description     *string `json:"description" form:"description" validate:"omitempty,max=2000"`
	TypeID          *string `json:"type_id" form:"type_id" validate:"omitempty,uuid4"`
	ConfidenceLevel *string `json:"confidence_level" form:"confidence_level" validate:"omitempty,oneof=low medium high"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified rejected expired"`
}

// ReportRow is a bounding-box query result: the report plus aggregate
// vote/comment counts and the derived verification label.
type ReportRow struct {
	ID                uuid.UUID `gorm:"column:id" json:"id"`
	Lat               float64   `gorm:"column:latitude" json:"lat"`
	Lon               float64   `gorm:"column:longitude" json:"lon"`
	Title             string    `gorm:"column:title" json:"title,omitempty"`
	Description       string    `gorm:"column:description" json:"description,omitempty"`
	ValidFrom         time.Time `gorm:"column:valid_from" json:"valid_from"`
	ValidUntil        time.Time `gorm:"column:valid_until" json:"valid_until"`
	Status            string    `gorm:"column:status" json:"status"`
	ConfidenceLevel   string    `gorm:"column:confidence_level" json:"confidence_level"`
	MediaURL          string    `gorm:"column:media_url" json:"media_url,omitempty"`
	SourceURL         string    `gorm:"column:source_url" json:"source_url,omitempty"`
	TypeName          string    `gorm:"column:type_name" json:"type_name,omitempty"`
	TypeColor         string    `gorm:"column:type_color" json:"type_color,omitempty"`
	ReporterUsername  string    `gorm:"column:reporter_username" json:"reporter_username,omitempty"`
	VoteCount         int       `gorm:"column:vote_count" json:"vote_count"`
	UpvoteCount       int       `gorm:"column:upvote_count" json:"-"`
	VerifyCount       int       `gorm:"column:verify_count" json:"-"`
	CommentCount      int       `gorm:"column:comment_count" json:"comment_count"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updated_at"`
	VerificationLabel string    `gorm:"-" json:"verification_label"`
}

type ReportDetail struct {
	ReportRow
	LocationName string        `json:"location_name,omitempty"`
	Votes        []VoteInfo    `json:"votes"`
	Comments     []CommentInfo `json:"comments"`
}

type CreateReportResponse struct {
	Message  string    `json:"message"`
	ReportID uuid.UUID `json:"report_id"`
}
