package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AeraCompetitorPrice holds the three cheapest competitor offers seen on the
// price-comparison aggregator.
type AeraCompetitorPrice struct {
	ID            uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     *uint               `gorm:"uniqueIndex" json:"product_id,omitempty"`
	SKU           string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	NetOwn        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"net_own"`
	NetTop1       decimal.NullDecimal `gorm:"column:net_top_1;type:decimal(12,2)" json:"net_top_1"`
	NetTop2       decimal.NullDecimal `gorm:"column:net_top_2;type:decimal(12,2)" json:"net_top_2"`
	NetTop3       decimal.NullDecimal `gorm:"column:net_top_3;type:decimal(12,2)" json:"net_top_3"`
	LastFetchedAt time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (AeraCompetitorPrice) TableName() string { return "aera_competitor_prices" }

// WawiboxCompetitorPrice holds the six cheapest offers on the marketplace,
// including the vendor that placed each of them.
type WawiboxCompetitorPrice struct {
	ID            uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     *uint               `gorm:"index" json:"product_id,omitempty"`
	SKU           *string             `gorm:"type:varchar(50);index" json:"sku,omitempty"`
	NetTop1       decimal.NullDecimal `gorm:"column:net_top_1;type:decimal(12,2)" json:"net_top_1"`
	VendorID1     *string             `gorm:"column:vendor_id_1;type:varchar(50)" json:"vendor_id_1,omitempty"`
	NetTop2       decimal.NullDecimal `gorm:"column:net_top_2;type:decimal(12,2)" json:"net_top_2"`
	VendorID2     *string             `gorm:"column:vendor_id_2;type:varchar(50)" json:"vendor_id_2,omitempty"`
	NetTop3       decimal.NullDecimal `gorm:"column:net_top_3;type:decimal(12,2)" json:"net_top_3"`
	VendorID3     *string             `gorm:"column:vendor_id_3;type:varchar(50)" json:"vendor_id_3,omitempty"`
	NetTop4       decimal.NullDecimal `gorm:"column:net_top_4;type:decimal(12,2)" json:"net_top_4"`
	VendorID4     *string             `gorm:"column:vendor_id_4;type:varchar(50)" json:"vendor_id_4,omitempty"`
	NetTop5       decimal.NullDecimal `gorm:"column:net_top_5;type:decimal(12,2)" json:"net_top_5"`
	VendorID5     *string             `gorm:"column:vendor_id_5;type:varchar(50)" json:"vendor_id_5,omitempty"`
	NetTop6       decimal.NullDecimal `gorm:"column:net_top_6;type:decimal(12,2)" json:"net_top_6"`
	VendorID6     *string             `gorm:"column:vendor_id_6;type:varchar(50)" json:"vendor_id_6,omitempty"`
	LastFetchedAt time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (WawiboxCompetitorPrice) TableName() string { return "wawibox_competitor_prices" }

// Offers returns the six (price, vendor) slots in rank order.
func (w *WawiboxCompetitorPrice) Offers() [6]VendorOffer {
	return [6]VendorOffer{
		{Price: w.NetTop1, VendorID: w.VendorID1},
		{Price: w.NetTop2, VendorID: w.VendorID2},
		{Price: w.NetTop3, VendorID: w.VendorID3},
		{Price: w.NetTop4, VendorID: w.VendorID4},
		{Price: w.NetTop5, VendorID: w.VendorID5},
		{Price: w.NetTop6, VendorID: w.VendorID6},
	}
}

// VendorOffer is one ranked marketplace offer.
type VendorOffer struct {
	Price    decimal.NullDecimal
	VendorID *string
}

// AeraProduct lists the SKUs offered on the aggregator.
type AeraProduct struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID *uint  `gorm:"uniqueIndex" json:"product_id,omitempty"`
	SKU       string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	AeraID    *int   `json:"aera_id,omitempty"`
}

func (AeraProduct) TableName() string { return "aera_products" }

// WawiboxProduct lists the SKUs offered on the marketplace.
type WawiboxProduct struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID *uint   `gorm:"uniqueIndex" json:"product_id,omitempty"`
	SKU       string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name      *string `gorm:"type:varchar(255)" json:"name,omitempty"`
}

func (WawiboxProduct) TableName() string { return "wawibox_products" }
