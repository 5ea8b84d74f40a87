package models

import (
	"github.com/shopspring/decimal"
)

// Surcharge fee types.
const (
	FeeTypePercent  = "percent"
	FeeTypeAbsolute = "absolute"
)

// HandlingSurcharge is the handling fee per GLS article group.
type HandlingSurcharge struct {
	ID               uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleGroupNo   string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"article_group_no"`
	ArticleGroupName *string         `gorm:"type:varchar(100)" json:"article_group_name,omitempty"`
	FeeType          string          `gorm:"type:varchar(10);not null;default:'percent'" json:"fee_type"`
	Value            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
}

func (HandlingSurcharge) TableName() string { return "handling_surcharges" }
