package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an append-only record of mutating actions. It is a
// write-only forensic side channel: nothing in the application reads
// it back.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:char(36);index" json:"user_id,omitempty"`
	Action    string         `gorm:"not null;size:50;index" json:"action"`
	TableName string         `gorm:"not null;size:50" json:"table_name"`
	RecordID  string         `gorm:"size:36;index" json:"record_id"`
	OldValues datatypes.JSON `json:"old_values,omitempty"`
	NewValues datatypes.JSON `json:"new_values,omitempty"`
	IPAddress string         `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
