package models

import (
	"time"
)

// Task names gated by TaskStatus.
const (
	TaskCalculateSalesPrices = "calculate_sales_prices"
	TaskPrepareExports       = "prepare_exports"
)

// TaskRetryAfterFailure is the wait before a failed task is retried.
const TaskRetryAfterFailure = 4 * time.Hour

// TaskStatus records the outcome of the last run of a periodic task.
type TaskStatus struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Status  bool      `gorm:"not null;default:false" json:"status"`
	LastRun time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_run"`
}

func (TaskStatus) TableName() string { return "task_statuses" }

// ShouldRun reports whether the task is due: a successful task runs once per
// UTC calendar day, a failed one is retried after TaskRetryAfterFailure.
// A nil status means the task never ran.
func (t *TaskStatus) ShouldRun(now time.Time) bool {
	if t == nil {
		return true
	}
	if !t.Status {
		return now.Sub(t.LastRun) >= TaskRetryAfterFailure
	}
	ly, lm, ld := t.LastRun.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	return ly != ny || lm != nm || ld != nd
}
