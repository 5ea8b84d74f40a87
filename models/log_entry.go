package models

import (
	"time"

	"gorm.io/datatypes"
)

// Log sources written to log_entries.
const (
	LogSourcePricing   = "pricing"
	LogSourceExports   = "exports"
	LogSourceScheduler = "scheduler"
)

// LogEntry is an operational log line kept in the database for the admin UI.
type LogEntry struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Source    string         `gorm:"type:varchar(50);not null;index" json:"source"`
	Level     string         `gorm:"type:varchar(20);not null;index" json:"level"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Fields    datatypes.JSON `json:"fields,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (LogEntry) TableName() string { return "log_entries" }

// LogEntryFilter represents filter criteria for log entry queries.
type LogEntryFilter struct {
	Source       *string    `json:"source,omitempty"`
	Level        *string    `json:"level,omitempty"`
	CreatedAfter *time.Time `json:"created_after,omitempty"`
}
