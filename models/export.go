package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Export channels.
const (
	ChannelAera    = "aera"
	ChannelWawibox = "wawibox"
)

// AERA availability types.
const (
	AvailabilityInStock    = 1
	AvailabilityOutOfStock = 2
)

// AeraExport is one offer row pushed to the aggregator.
type AeraExport struct {
	ID                       uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU                      *string             `gorm:"type:varchar(25)" json:"sku,omitempty"`
	ProductName              *string             `gorm:"type:varchar(255)" json:"product_name,omitempty"`
	Manufacturer             *string             `gorm:"type:varchar(200)" json:"manufacturer,omitempty"`
	MPN                      *string             `gorm:"column:mpn;type:varchar(25)" json:"mpn,omitempty"`
	GTIN                     *string             `gorm:"column:gtin;type:varchar(14)" json:"gtin,omitempty"`
	OfferTypeID              int                 `gorm:"not null;default:1" json:"offer_type_id"`
	AvailabilityTypeID       int                 `gorm:"not null;default:1" json:"availability_type_id"`
	DifferentDeliveryTime    int                 `gorm:"not null;default:3" json:"different_delivery_time"`
	ShippedTemperatureStable bool                `gorm:"not null;default:true" json:"shipped_temperature_stable"`
	SalesPrice               decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"sales_price"`
	GiftSalesPrice           decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"gift_sales_price"`
	GiftMinQty               *int                `json:"gift_min_qty,omitempty"`
	GiftValidUntil           *datatypes.Date     `json:"gift_valid_until,omitempty"`
	UpdatedAt                time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AeraExport) TableName() string { return "aera_exports" }

// WawiboxExport is one offer row pushed to the marketplace.
type WawiboxExport struct {
	ID                    uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	InternalNumber        string              `gorm:"type:varchar(100);not null;index" json:"internal_number"`
	Name                  *string             `gorm:"type:varchar(255)" json:"name,omitempty"`
	ManufacturerArticleNo *string             `gorm:"type:varchar(100)" json:"manufacturer_article_no,omitempty"`
	SalesPrice            decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"sales_price"`
	UpdatedAt             time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (WawiboxExport) TableName() string { return "wawibox_exports" }
