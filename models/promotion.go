package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PromotionHeader is a supplier promotion (action). Quantities arrive as text
// from the feed and are parsed by the pricing engine.
type PromotionHeader struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ActionCode         *string         `gorm:"type:varchar(20);index" json:"action_code,omitempty"`
	ActionType         *string         `gorm:"type:varchar(5)" json:"action_type,omitempty"`
	ShortText          *string         `gorm:"type:varchar(50)" json:"short_text,omitempty"`
	ValidFrom          *datatypes.Date `json:"valid_from,omitempty"`
	ValidTo            *datatypes.Date `json:"valid_to,omitempty"`
	MinQty             *string         `gorm:"type:varchar(20)" json:"min_qty,omitempty"`
	NaturalDiscountQty *string         `gorm:"type:varchar(100)" json:"natural_discount_qty,omitempty"`
	LastFetchedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (PromotionHeader) TableName() string { return "promotion_headers" }

// PromotionPrice is a per-article price line of a promotion.
type PromotionPrice struct {
	ID                       uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID                *uint               `gorm:"index" json:"product_id,omitempty"`
	ActionCode               *string             `gorm:"type:varchar(20);index" json:"action_code,omitempty"`
	ArticleNo                *string             `gorm:"type:varchar(50);index" json:"article_no,omitempty"`
	ValidFrom                *datatypes.Date     `json:"valid_from,omitempty"`
	ValidTo                  *datatypes.Date     `json:"valid_to,omitempty"`
	PromotionPrice           decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"promotion_price"`
	PromotionalPurchasePrice decimal.NullDecimal `gorm:"type:decimal(14,4)" json:"promotional_purchase_price"`
	LastFetchedAt            time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (PromotionPrice) TableName() string { return "promotion_prices" }

// PromotionPosition is a per-article position line of a promotion.
type PromotionPosition struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      *uint     `gorm:"index" json:"product_id,omitempty"`
	ActionCode     *string   `gorm:"type:varchar(20);index" json:"action_code,omitempty"`
	PositionNumber *string   `gorm:"type:varchar(20)" json:"position_number,omitempty"`
	ArticleNo      *string   `gorm:"type:varchar(50);index" json:"article_no,omitempty"`
	SetQty         *string   `gorm:"type:varchar(20)" json:"set_qty,omitempty"`
	QtyEditable    *string   `gorm:"type:varchar(5)" json:"qty_editable,omitempty"`
	LastFetchedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_fetched_at"`
}

func (PromotionPosition) TableName() string { return "promotion_positions" }
