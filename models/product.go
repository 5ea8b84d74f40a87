package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Supplier sources. Each source has its own cost feed.
const (
	SupplierGLS    = "GLS"
	SupplierNonGLS = "NON_GLS"
)

// Product is the sellable article. It is created by the master data import and
// only its pricing columns are written by the pricing engine.
type Product struct {
	ID                    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU                   *string `gorm:"type:varchar(50);uniqueIndex" json:"sku,omitempty"`
	Supplier              string  `gorm:"type:varchar(20);not null;default:'GLS';index" json:"supplier"`
	SupplierArticleNo     *string `gorm:"type:varchar(50);index" json:"supplier_article_no,omitempty"`
	ManufacturerArticleNo *string `gorm:"type:varchar(100)" json:"manufacturer_article_no,omitempty"`
	ArticleGroupNo        *string `gorm:"type:varchar(10)" json:"article_group_no,omitempty"`
	Name                  *string `gorm:"type:varchar(255)" json:"name,omitempty"`
	Manufacturer          *string `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	GTIN                  *string `gorm:"column:gtin;type:varchar(14)" json:"gtin,omitempty"`
	StoreRefrigerated     bool    `gorm:"not null;default:false" json:"store_refrigerated"`
	IsBlocked             bool    `gorm:"not null;default:true;index" json:"is_blocked"`

	// Channel sales prices
	AeraSalesPrice    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"aera_sales_price"`
	WawiboxSalesPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"wawibox_sales_price"`

	// Gift tier, all null unless HasGiftPrice
	AeraGiftSalesPrice    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"aera_gift_sales_price"`
	WawiboxGiftSalesPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"wawibox_gift_sales_price"`
	GiftMinQty            *int                `json:"gift_min_qty,omitempty"`
	GiftFreeQty           *int                `json:"gift_free_qty,omitempty"`
	GiftPaidQty           *int                `json:"gift_paid_qty,omitempty"`
	GiftValidFrom         *datatypes.Date     `json:"gift_valid_from,omitempty"`
	GiftValidUntil        *datatypes.Date     `json:"gift_valid_until,omitempty"`
	GiftPromoCode         *string             `gorm:"type:varchar(20)" json:"gift_promo_code,omitempty"`
	GiftActionType        *string             `gorm:"type:varchar(5)" json:"gift_action_type,omitempty"`
	HasGiftPrice          bool                `gorm:"not null;default:false" json:"has_gift_price"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// IsGLS reports whether the product is sourced from the primary supplier.
func (p *Product) IsGLS() bool {
	return p.Supplier == SupplierGLS
}

// GenerateSKU derives the SKU from the supplier article number.
func (p *Product) GenerateSKU() *string {
	if p.SupplierArticleNo == nil || *p.SupplierArticleNo == "" {
		return nil
	}
	if p.IsGLS() {
		sku := fmt.Sprintf("LG%s", *p.SupplierArticleNo)
		return &sku
	}

	prefix := ""
	if p.Manufacturer != nil {
		prefix = strings.ToUpper(*p.Manufacturer)
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
	}
	sku := prefix + *p.SupplierArticleNo
	return &sku
}

// HasAnySalesPrice reports whether at least one channel price is set.
func (p *Product) HasAnySalesPrice() bool {
	return p.AeraSalesPrice.Valid || p.WawiboxSalesPrice.Valid
}

// PricingCandidate is the projection the pricing engine iterates over.
type PricingCandidate struct {
	ID             uint
	Supplier       string
	ArticleGroupNo *string
}

// GiftPricing carries the gift tier written to a product.
type GiftPricing struct {
	AeraGiftSalesPrice    decimal.NullDecimal
	WawiboxGiftSalesPrice decimal.NullDecimal
	MinQty                int
	FreeQty               int
	PaidQty               int
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	PromoCode             string
	ActionType            string
}

// ProductPricingUpdate is the result of one pricing run for one product.
// Prices are only applied when HasPrices is set; gift fields are always
// written and cleared when Gift is nil.
type ProductPricingUpdate struct {
	ProductID         uint
	HasPrices         bool
	AeraSalesPrice    decimal.NullDecimal
	WawiboxSalesPrice decimal.NullDecimal
	Gift              *GiftPricing
}

// ProductFilter represents filter criteria for product queries.
type ProductFilter struct {
	ID          *uint    `json:"id,omitempty"`
	IDs         []uint   `json:"ids,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Supplier    *string  `json:"supplier,omitempty"`
	IsBlocked   *bool    `json:"is_blocked,omitempty"`
	HasAnyPrice *bool    `json:"has_any_price,omitempty"`
	SKUs        []string `json:"skus,omitempty"`
}
