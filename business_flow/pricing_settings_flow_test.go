package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPricingSettingsFlowGet(t *testing.T) {
	logger, _ := test.NewNullLogger()

	t.Run("NotConfigured", func(t *testing.T) {
		flow := NewPricingSettingsFlow(&fakeSettingsRepo{}, logger)
		_, err := flow.GetSettings(context.Background())
		assert.True(t, IsPricingSettingsNotFound(err))
	})

	t.Run("Configured", func(t *testing.T) {
		repo := &fakeSettingsRepo{settings: &models.PricingSettings{
			CompetitorRule: models.CompetitorRuleAverage,
			MinimumMargin:  decimal.NewFromInt(12),
			UndercutValue:  decimal.RequireFromString("0.1"),
		}}
		flow := NewPricingSettingsFlow(repo, logger)

		got, err := flow.GetSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "average", got.CompetitorRule)
		assert.Equal(t, "12.00", got.MinimumMargin)
		assert.Equal(t, "0.10", got.UndercutValue)
	})
}

func TestPricingSettingsFlowUpdate(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tests := []struct {
		name     string
		req      *dto.UpdatePricingSettingsRequest
		wantCode string
		wantErr  error
	}{
		{
			name:     "NilRequest",
			wantCode: "INVALID_REQUEST",
		},
		{
			name:     "UnknownRule",
			req:      &dto.UpdatePricingSettingsRequest{CompetitorRule: "median", MinimumMargin: decPtr("10"), UndercutValue: decPtr("0")},
			wantCode: "INVALID_COMPETITOR_RULE",
			wantErr:  ErrInvalidCompetitorRule,
		},
		{
			name:     "MarginAboveHundred",
			req:      &dto.UpdatePricingSettingsRequest{CompetitorRule: "cheapest", MinimumMargin: decPtr("100.01"), UndercutValue: decPtr("0")},
			wantCode: "INVALID_MINIMUM_MARGIN",
			wantErr:  ErrInvalidMinimumMargin,
		},
		{
			name:     "NegativeMargin",
			req:      &dto.UpdatePricingSettingsRequest{CompetitorRule: "cheapest", MinimumMargin: decPtr("-1"), UndercutValue: decPtr("0")},
			wantCode: "INVALID_MINIMUM_MARGIN",
			wantErr:  ErrInvalidMinimumMargin,
		},
		{
			name:     "NegativeUndercut",
			req:      &dto.UpdatePricingSettingsRequest{CompetitorRule: "average", MinimumMargin: decPtr("5"), UndercutValue: decPtr("-0.01")},
			wantCode: "INVALID_UNDERCUT_VALUE",
			wantErr:  ErrInvalidUndercutValue,
		},
		{
			name: "Valid",
			req:  &dto.UpdatePricingSettingsRequest{CompetitorRule: "average", MinimumMargin: decPtr("100"), UndercutValue: decPtr("0.05")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSettingsRepo{}
			flow := NewPricingSettingsFlow(repo, logger)
			metadata := NewClientMetadata("127.0.0.1", "test")
			metadata.SetAdminID(7)

			got, err := flow.UpdateSettings(context.Background(), tt.req, metadata)
			if tt.wantCode != "" {
				var bizErr *BusinessError
				require.True(t, errors.As(err, &bizErr))
				assert.Equal(t, tt.wantCode, bizErr.Code)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, repo.settings)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "average", got.CompetitorRule)
			assert.Equal(t, "100.00", got.MinimumMargin)
			require.NotNil(t, got.UpdatedBy)
			assert.Equal(t, uint(7), *got.UpdatedBy)
			require.NotNil(t, repo.settings)
			assert.True(t, repo.settings.NormalisedMinimumMargin().Equal(decimal.NewFromInt(1)))
			assert.Equal(t, "Pricing settings updated", hook.LastEntry().Message)
		})
	}
}
