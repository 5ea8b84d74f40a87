package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskStatusRepositoryImpl implements TaskStatusRepository interface
type TaskStatusRepositoryImpl struct {
	*BaseRepository[models.TaskStatus, struct{}]
}

// NewTaskStatusRepository creates a new task status repository
func NewTaskStatusRepository(db *gorm.DB) TaskStatusRepository {
	return &TaskStatusRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TaskStatus, struct{}](db),
	}
}

// ByName returns the status of a task, or nil if it never ran
func (r *TaskStatusRepositoryImpl) ByName(ctx context.Context, name string) (*models.TaskStatus, error) {
	var row models.TaskStatus
	if err := r.getDB(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load task status %s: %w", name, err)
	}
	return &row, nil
}

// List returns all task statuses
func (r *TaskStatusRepositoryImpl) List(ctx context.Context) ([]*models.TaskStatus, error) {
	var rows []*models.TaskStatus
	if err := r.getDB(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list task statuses: %w", err)
	}
	return rows, nil
}

// SetSuccess records a successful run
func (r *TaskStatusRepositoryImpl) SetSuccess(ctx context.Context, name string, at time.Time) error {
	return r.upsert(ctx, name, true, at)
}

// SetFailure records a failed run
func (r *TaskStatusRepositoryImpl) SetFailure(ctx context.Context, name string, at time.Time) error {
	return r.upsert(ctx, name, false, at)
}

func (r *TaskStatusRepositoryImpl) upsert(ctx context.Context, name string, status bool, at time.Time) error {
	row := models.TaskStatus{Name: name, Status: status, LastRun: at}
	return r.write(ctx, func(db *gorm.DB) error {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "last_run"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to record task status %s: %w", name, err)
		}
		return nil
	})
}
