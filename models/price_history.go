package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrPriceHistoryImmutable is returned when an update of a history row is attempted.
var ErrPriceHistoryImmutable = errors.New("price history rows are immutable")

// ProductPriceHistory is an immutable snapshot of the prices computed for a
// product by one pricing run. All rows of a run share RunID.
type ProductPriceHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID     uuid.UUID `gorm:"type:char(36);index;not null" json:"run_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`

	AeraSalesPrice    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"aera_sales_price"`
	WawiboxSalesPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"wawibox_sales_price"`

	AeraGiftSalesPrice    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"aera_gift_sales_price"`
	WawiboxGiftSalesPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"wawibox_gift_sales_price"`
	GiftMinQty            *int                `json:"gift_min_qty,omitempty"`
	GiftFreeQty           *int                `json:"gift_free_qty,omitempty"`
	GiftPaidQty           *int                `json:"gift_paid_qty,omitempty"`
	GiftValidFrom         *datatypes.Date     `json:"gift_valid_from,omitempty"`
	GiftValidUntil        *datatypes.Date     `json:"gift_valid_until,omitempty"`

	CalculatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"calculated_at"`
}

func (ProductPriceHistory) TableName() string { return "product_price_histories" }

// BeforeCreate ensures RunID is set.
func (h *ProductPriceHistory) BeforeCreate(tx *gorm.DB) error {
	if h.RunID == uuid.Nil {
		h.RunID = uuid.New()
	}
	return nil
}

// BeforeUpdate rejects in-place modification.
func (h *ProductPriceHistory) BeforeUpdate(tx *gorm.DB) error {
	return ErrPriceHistoryImmutable
}

// ProductPriceHistoryFilter represents filter criteria for price history queries.
type ProductPriceHistoryFilter struct {
	ProductID        *uint      `json:"product_id,omitempty"`
	RunID            *uuid.UUID `json:"run_id,omitempty"`
	CalculatedAfter  *time.Time `json:"calculated_after,omitempty"`
	CalculatedBefore *time.Time `json:"calculated_before,omitempty"`
}
