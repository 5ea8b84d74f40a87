package repository

import (
	"context"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
)

// PromotionRepositoryImpl implements PromotionRepository interface
type PromotionRepositoryImpl struct {
	*BaseRepository[models.PromotionHeader, struct{}]
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &PromotionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PromotionHeader, struct{}](db),
	}
}

// Headers returns all promotion headers
func (r *PromotionRepositoryImpl) Headers(ctx context.Context) ([]models.PromotionHeader, error) {
	var rows []models.PromotionHeader
	if err := r.getDB(ctx).Order("action_code ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load promotion headers: %w", err)
	}
	return rows, nil
}

// Prices returns all promotion price lines
func (r *PromotionRepositoryImpl) Prices(ctx context.Context) ([]models.PromotionPrice, error) {
	var rows []models.PromotionPrice
	if err := r.getDB(ctx).Order("action_code ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load promotion prices: %w", err)
	}
	return rows, nil
}

// Positions returns all promotion position lines
func (r *PromotionRepositoryImpl) Positions(ctx context.Context) ([]models.PromotionPosition, error) {
	var rows []models.PromotionPosition
	if err := r.getDB(ctx).Order("action_code ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load promotion positions: %w", err)
	}
	return rows, nil
}
