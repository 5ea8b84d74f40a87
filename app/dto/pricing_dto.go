package dto

import (
	"github.com/shopspring/decimal"
)

// PricingRunResult reports the outcome of one sales price calculation
type PricingRunResult struct {
	RunID              string `json:"run_id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	StartedAt          string `json:"started_at" example:"2024-01-15T03:00:00Z"`
	FinishedAt         string `json:"finished_at" example:"2024-01-15T03:01:12Z"`
	DurationMillis     int64  `json:"duration_ms" example:"72000"`
	Candidates         int    `json:"candidates" example:"18000"`
	PrimaryPriced      int    `json:"primary_priced" example:"15000"`
	SecondaryPriced    int    `json:"secondary_priced" example:"2500"`
	Unresolved         int    `json:"unresolved" example:"500"`
	GiftOffers         int    `json:"gift_offers" example:"320"`
	UpdatedProducts    int64  `json:"updated_products" example:"17820"`
	HistoryRows        int    `json:"history_rows" example:"17500"`
	PurgedHistoryRows  int64  `json:"purged_history_rows" example:"17400"`
	BlockedActionCodes int    `json:"blocked_action_codes" example:"4"`
}

// PricingSettingsDTO is the pricing settings singleton
type PricingSettingsDTO struct {
	CompetitorRule string `json:"competitor_rule" example:"cheapest"`
	MinimumMargin  string `json:"minimum_margin" example:"10.00"`
	UndercutValue  string `json:"undercut_value" example:"0.05"`
	UpdatedBy      *uint  `json:"updated_by,omitempty" example:"1"`
	UpdatedAt      string `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// UpdatePricingSettingsRequest replaces the pricing settings. MinimumMargin
// is a percentage between 0 and 100.
type UpdatePricingSettingsRequest struct {
	CompetitorRule string           `json:"competitor_rule" validate:"required,oneof=cheapest average" example:"cheapest"`
	MinimumMargin  *decimal.Decimal `json:"minimum_margin" validate:"required" swaggertype:"string" example:"10.00"`
	UndercutValue  *decimal.Decimal `json:"undercut_value" validate:"required" swaggertype:"string" example:"0.05"`
}

// ListPriceHistoryRequest pages through the history of one product
type ListPriceHistoryRequest struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Limit     int  `json:"limit" query:"limit" validate:"omitempty,min=1,max=500"`
	Offset    int  `json:"offset" query:"offset" validate:"omitempty,min=0"`
}

// PriceHistoryItem is one historic price snapshot
type PriceHistoryItem struct {
	ID                    uint    `json:"id" example:"1"`
	RunID                 string  `json:"run_id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	AeraSalesPrice        *string `json:"aera_sales_price,omitempty" example:"14.95"`
	WawiboxSalesPrice     *string `json:"wawibox_sales_price,omitempty" example:"15.10"`
	AeraGiftSalesPrice    *string `json:"aera_gift_sales_price,omitempty" example:"12.00"`
	WawiboxGiftSalesPrice *string `json:"wawibox_gift_sales_price,omitempty" example:"12.10"`
	GiftMinQty            *int    `json:"gift_min_qty,omitempty" example:"10"`
	GiftFreeQty           *int    `json:"gift_free_qty,omitempty" example:"2"`
	GiftPaidQty           *int    `json:"gift_paid_qty,omitempty" example:"8"`
	GiftValidFrom         *string `json:"gift_valid_from,omitempty" example:"2024-01-01"`
	GiftValidUntil        *string `json:"gift_valid_until,omitempty" example:"2024-01-31"`
	CalculatedAt          string  `json:"calculated_at" example:"2024-01-15T03:01:12Z"`
}

// ListPriceHistoryResponse is a page of price history, newest first
type ListPriceHistoryResponse struct {
	ProductID uint               `json:"product_id"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	Items     []PriceHistoryItem `json:"items"`
}
