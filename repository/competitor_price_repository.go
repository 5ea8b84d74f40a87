package repository

import (
	"context"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
)

// CompetitorPriceRepositoryImpl implements CompetitorPriceRepository and ChannelListingRepository
type CompetitorPriceRepositoryImpl struct {
	*BaseRepository[models.AeraCompetitorPrice, struct{}]
}

// NewCompetitorPriceRepository creates a new competitor price repository
func NewCompetitorPriceRepository(db *gorm.DB) *CompetitorPriceRepositoryImpl {
	return &CompetitorPriceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AeraCompetitorPrice, struct{}](db),
	}
}

// Aera returns the aggregator competitor snapshot
func (r *CompetitorPriceRepositoryImpl) Aera(ctx context.Context) ([]models.AeraCompetitorPrice, error) {
	var rows []models.AeraCompetitorPrice
	if err := r.getDB(ctx).Where("product_id IS NOT NULL").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load aera competitor prices: %w", err)
	}
	return rows, nil
}

// Wawibox returns the marketplace competitor snapshot
func (r *CompetitorPriceRepositoryImpl) Wawibox(ctx context.Context) ([]models.WawiboxCompetitorPrice, error) {
	var rows []models.WawiboxCompetitorPrice
	if err := r.getDB(ctx).Where("product_id IS NOT NULL").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load wawibox competitor prices: %w", err)
	}
	return rows, nil
}

// AeraSKUs returns the SKUs listed on the aggregator
func (r *CompetitorPriceRepositoryImpl) AeraSKUs(ctx context.Context) (map[string]struct{}, error) {
	return r.skus(ctx, &models.AeraProduct{})
}

// WawiboxSKUs returns the SKUs listed on the marketplace
func (r *CompetitorPriceRepositoryImpl) WawiboxSKUs(ctx context.Context) (map[string]struct{}, error) {
	return r.skus(ctx, &models.WawiboxProduct{})
}

func (r *CompetitorPriceRepositoryImpl) skus(ctx context.Context, model any) (map[string]struct{}, error) {
	var skus []string
	if err := r.getDB(ctx).Model(model).Pluck("sku", &skus).Error; err != nil {
		return nil, fmt.Errorf("failed to load channel listing: %w", err)
	}
	set := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		set[sku] = struct{}{}
	}
	return set, nil
}
