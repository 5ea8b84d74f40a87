package repository

import (
	"context"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"gorm.io/gorm"
)

// SurchargeRepositoryImpl implements SurchargeRepository interface
type SurchargeRepositoryImpl struct {
	*BaseRepository[models.HandlingSurcharge, struct{}]
}

// NewSurchargeRepository creates a new handling surcharge repository
func NewSurchargeRepository(db *gorm.DB) SurchargeRepository {
	return &SurchargeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.HandlingSurcharge, struct{}](db),
	}
}

// All returns every handling surcharge
func (r *SurchargeRepositoryImpl) All(ctx context.Context) ([]models.HandlingSurcharge, error) {
	var rows []models.HandlingSurcharge
	if err := r.getDB(ctx).Order("article_group_no ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load handling surcharges: %w", err)
	}
	return rows, nil
}
