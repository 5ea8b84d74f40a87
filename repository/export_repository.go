package repository

import (
	"context"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
)

// ExportRepositoryImpl implements ExportRepository interface
type ExportRepositoryImpl struct {
	*BaseRepository[models.AeraExport, struct{}]
}

// NewExportRepository creates a new export repository
func NewExportRepository(db *gorm.DB) ExportRepository {
	return &ExportRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AeraExport, struct{}](db),
	}
}

// ReplaceAera swaps the content of the aggregator export table
func (r *ExportRepositoryImpl) ReplaceAera(ctx context.Context, rows []*models.AeraExport, batchSize int) error {
	return replaceAll(ctx, r.write, &models.AeraExport{}, rows, batchSize)
}

// ReplaceWawibox swaps the content of the marketplace export table
func (r *ExportRepositoryImpl) ReplaceWawibox(ctx context.Context, rows []*models.WawiboxExport, batchSize int) error {
	return replaceAll(ctx, r.write, &models.WawiboxExport{}, rows, batchSize)
}

func replaceAll[T any](ctx context.Context, write func(context.Context, func(*gorm.DB) error) error, model *T, rows []*T, batchSize int) error {
	return write(ctx, func(db *gorm.DB) error {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear export table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := db.CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert export rows: %w", err)
		}
		return nil
	})
}

// ListAera returns the aggregator export rows
func (r *ExportRepositoryImpl) ListAera(ctx context.Context) ([]*models.AeraExport, error) {
	var rows []*models.AeraExport
	if err := r.getDB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list aera exports: %w", err)
	}
	return rows, nil
}

// ListWawibox returns the marketplace export rows
func (r *ExportRepositoryImpl) ListWawibox(ctx context.Context) ([]*models.WawiboxExport, error) {
	var rows []*models.WawiboxExport
	if err := r.getDB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list wawibox exports: %w", err)
	}
	return rows, nil
}
