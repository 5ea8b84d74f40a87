package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
)

// PriceHistoryRepositoryImpl implements PriceHistoryRepository interface
type PriceHistoryRepositoryImpl struct {
	*BaseRepository[models.ProductPriceHistory, models.ProductPriceHistoryFilter]
}

// NewPriceHistoryRepository creates a new price history repository
func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &PriceHistoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ProductPriceHistory, models.ProductPriceHistoryFilter](db),
	}
}

// SaveRun inserts the history rows of one pricing run
func (r *PriceHistoryRepositoryImpl) SaveRun(ctx context.Context, rows []*models.ProductPriceHistory, batchSize int) error {
	return r.saveInBatches(ctx, rows, batchSize)
}

// DeleteOlderThan removes history rows calculated before cutoff
func (r *PriceHistoryRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.write(ctx, func(db *gorm.DB) error {
		res := db.Where("calculated_at < ?", cutoff).Delete(&models.ProductPriceHistory{})
		if res.Error != nil {
			return fmt.Errorf("failed to prune price history: %w", res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// applyFilter applies filter criteria to a GORM query
func (r *PriceHistoryRepositoryImpl) applyFilter(query *gorm.DB, filter models.ProductPriceHistoryFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.RunID != nil {
		query = query.Where("run_id = ?", *filter.RunID)
	}
	if filter.CalculatedAfter != nil {
		query = query.Where("calculated_at >= ?", *filter.CalculatedAfter)
	}
	if filter.CalculatedBefore != nil {
		query = query.Where("calculated_at < ?", *filter.CalculatedBefore)
	}
	return query
}

// ByFilter retrieves price history rows based on filter criteria
func (r *PriceHistoryRepositoryImpl) ByFilter(ctx context.Context, filter models.ProductPriceHistoryFilter, orderBy string, limit, offset int) ([]*models.ProductPriceHistory, error) {
	if orderBy == "" {
		orderBy = "calculated_at DESC, id DESC"
	}
	query := r.applyFilter(r.getDB(ctx).Model(&models.ProductPriceHistory{}), filter)
	query = paginate(query, orderBy, limit, offset)

	var rows []*models.ProductPriceHistory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of history rows matching the filter
func (r *PriceHistoryRepositoryImpl) Count(ctx context.Context, filter models.ProductPriceHistoryFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.getDB(ctx).Model(&models.ProductPriceHistory{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any history row matches the filter
func (r *PriceHistoryRepositoryImpl) Exists(ctx context.Context, filter models.ProductPriceHistoryFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
