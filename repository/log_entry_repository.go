package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
)

// LogEntryRepositoryImpl implements LogEntryRepository interface
type LogEntryRepositoryImpl struct {
	*BaseRepository[models.LogEntry, models.LogEntryFilter]
}

// NewLogEntryRepository creates a new log entry repository
func NewLogEntryRepository(db *gorm.DB) LogEntryRepository {
	return &LogEntryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.LogEntry, models.LogEntryFilter](db),
	}
}

// DeleteOlderThan removes log entries created before cutoff
func (r *LogEntryRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.getDB(ctx).Where("created_at < ?", cutoff).Delete(&models.LogEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune log entries: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *LogEntryRepositoryImpl) applyFilter(query *gorm.DB, filter models.LogEntryFilter) *gorm.DB {
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	return query
}

// ByFilter retrieves log entries based on filter criteria
func (r *LogEntryRepositoryImpl) ByFilter(ctx context.Context, filter models.LogEntryFilter, orderBy string, limit, offset int) ([]*models.LogEntry, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.LogEntry{}), filter)
	query = paginate(query, orderBy, limit, offset)

	var rows []*models.LogEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of log entries matching the filter
func (r *LogEntryRepositoryImpl) Count(ctx context.Context, filter models.LogEntryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.getDB(ctx).Model(&models.LogEntry{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any log entry matches the filter
func (r *LogEntryRepositoryImpl) Exists(ctx context.Context, filter models.LogEntryFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
