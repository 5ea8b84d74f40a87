package businessflow

import (
	"context"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var maxMinimumMargin = decimal.NewFromInt(100)

// PricingSettingsFlow reads and replaces the pricing settings singleton
type PricingSettingsFlow interface {
	GetSettings(ctx context.Context) (*dto.PricingSettingsDTO, error)
	UpdateSettings(ctx context.Context, req *dto.UpdatePricingSettingsRequest, metadata *ClientMetadata) (*dto.PricingSettingsDTO, error)
}

// PricingSettingsFlowImpl implements PricingSettingsFlow
type PricingSettingsFlowImpl struct {
	settingsRepo repository.PricingSettingsRepository
	logger       logrus.FieldLogger
}

func NewPricingSettingsFlow(settingsRepo repository.PricingSettingsRepository, logger logrus.FieldLogger) PricingSettingsFlow {
	return &PricingSettingsFlowImpl{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (f *PricingSettingsFlowImpl) GetSettings(ctx context.Context) (*dto.PricingSettingsDTO, error) {
	settings, err := f.settingsRepo.Current(ctx)
	if err != nil {
		return nil, NewBusinessError("PRICING_SETTINGS_LOOKUP_FAILED", "Failed to load pricing settings", err)
	}
	if settings == nil {
		return nil, NewBusinessError("PRICING_SETTINGS_NOT_FOUND", "Pricing settings are not configured", ErrPricingSettingsNotFound)
	}
	out := toPricingSettingsDTO(settings)
	return &out, nil
}

func (f *PricingSettingsFlowImpl) UpdateSettings(ctx context.Context, req *dto.UpdatePricingSettingsRequest, metadata *ClientMetadata) (*dto.PricingSettingsDTO, error) {
	if err := validateSettingsRequest(req); err != nil {
		return nil, err
	}

	settings := &models.PricingSettings{
		CompetitorRule: models.CompetitorRule(req.CompetitorRule),
		MinimumMargin:  *req.MinimumMargin,
		UndercutValue:  *req.UndercutValue,
	}
	if metadata != nil {
		settings.UpdatedBy = metadata.AdminID
	}

	if err := f.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, NewBusinessError("PRICING_SETTINGS_UPDATE_FAILED", "Failed to update pricing settings", err)
	}

	f.logger.WithFields(logrus.Fields{
		"competitor_rule": settings.CompetitorRule,
		"minimum_margin":  settings.MinimumMargin.String(),
		"undercut_value":  settings.UndercutValue.String(),
		"updated_by":      settings.UpdatedBy,
	}).Info("Pricing settings updated")

	out := toPricingSettingsDTO(settings)
	return &out, nil
}

func validateSettingsRequest(req *dto.UpdatePricingSettingsRequest) error {
	if req == nil {
		return NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	if !models.CompetitorRule(req.CompetitorRule).Valid() {
		return NewBusinessErrorf("INVALID_COMPETITOR_RULE", "Unknown competitor rule %q", ErrInvalidCompetitorRule, req.CompetitorRule)
	}
	if req.MinimumMargin == nil || req.MinimumMargin.IsNegative() || req.MinimumMargin.GreaterThan(maxMinimumMargin) {
		return NewBusinessError("INVALID_MINIMUM_MARGIN", "Minimum margin must be a percentage between 0 and 100", ErrInvalidMinimumMargin)
	}
	if req.UndercutValue == nil || req.UndercutValue.IsNegative() {
		return NewBusinessError("INVALID_UNDERCUT_VALUE", "Undercut value must not be negative", ErrInvalidUndercutValue)
	}
	return nil
}

func toPricingSettingsDTO(s *models.PricingSettings) dto.PricingSettingsDTO {
	return dto.PricingSettingsDTO{
		CompetitorRule: string(s.CompetitorRule),
		MinimumMargin:  s.MinimumMargin.StringFixed(2),
		UndercutValue:  s.UndercutValue.StringFixed(2),
		UpdatedBy:      s.UpdatedBy,
		UpdatedAt:      s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
