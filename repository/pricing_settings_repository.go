package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/utils"
	"gorm.io/gorm"
)

// PricingSettingsRepositoryImpl implements PricingSettingsRepository interface
type PricingSettingsRepositoryImpl struct {
	*BaseRepository[models.PricingSettings, struct{}]
}

// NewPricingSettingsRepository creates a new pricing settings repository
func NewPricingSettingsRepository(db *gorm.DB) PricingSettingsRepository {
	return &PricingSettingsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingSettings, struct{}](db),
	}
}

// Current returns the settings row with the lowest id, or nil when none exists
func (r *PricingSettingsRepositoryImpl) Current(ctx context.Context) (*models.PricingSettings, error) {
	var row models.PricingSettings
	if err := r.getDB(ctx).Order("id ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load pricing settings: %w", err)
	}
	return &row, nil
}

// Upsert stores settings as the singleton row
func (r *PricingSettingsRepositoryImpl) Upsert(ctx context.Context, settings *models.PricingSettings) error {
	current, err := r.Current(ctx)
	if err != nil {
		return err
	}

	return r.write(ctx, func(db *gorm.DB) error {
		if current == nil {
			if err := db.Create(settings).Error; err != nil {
				return fmt.Errorf("failed to create pricing settings: %w", err)
			}
			return nil
		}

		settings.ID = current.ID
		settings.CreatedAt = current.CreatedAt
		settings.UpdatedAt = utils.UTCNow()
		if err := db.Save(settings).Error; err != nil {
			return fmt.Errorf("failed to update pricing settings: %w", err)
		}
		return nil
	})
}
