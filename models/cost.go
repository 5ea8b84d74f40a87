package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GLSPriceList is the supplier price list; BillBackPrice is the purchase cost
// of GLS products.
type GLSPriceList struct {
	ID                     uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID              *uint               `gorm:"index" json:"product_id,omitempty"`
	ArticleNo              string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"article_no"`
	PurchasePrice          decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"purchase_price"`
	BillBackPrice          decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"bill_back_price"`
	RecommendedRetailPrice decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"recommended_retail_price"`
	LastFetchedAt          time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (GLSPriceList) TableName() string { return "gls_price_lists" }

// AdditionalMasterData holds master data of non-GLS articles. The calculation
// price already includes handling.
type AdditionalMasterData struct {
	ID                      uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID               *uint               `gorm:"index" json:"product_id,omitempty"`
	ArticleNo               *string             `gorm:"type:varchar(50);index" json:"article_no,omitempty"`
	Name                    *string             `gorm:"type:varchar(250)" json:"name,omitempty"`
	ManufacturerArticleNo   *string             `gorm:"type:varchar(50)" json:"manufacturer_article_no,omitempty"`
	ArticleCalculationPrice decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"article_calculation_price"`
	GTIN                    *string             `gorm:"column:gtin;type:varchar(100)" json:"gtin,omitempty"`
	Manufacturer            *string             `gorm:"type:varchar(200)" json:"manufacturer,omitempty"`
	Stock                   decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"stock"`
	StoreRefrigerated       bool                `gorm:"not null;default:false" json:"store_refrigerated"`
	Active                  bool                `gorm:"not null;default:true" json:"active"`
	CreatedAt               time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AdditionalMasterData) TableName() string { return "additional_master_data" }

// GLSStockLevel is the warehouse inventory per GLS article.
type GLSStockLevel struct {
	ID            uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleNo     string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"article_no"`
	Inventory     decimal.Decimal     `gorm:"type:decimal(14,4);not null" json:"inventory"`
	OrderedQty    decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"ordered_qty"`
	LastFetchedAt time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (GLSStockLevel) TableName() string { return "gls_stock_levels" }
