package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jasado/jasado-middleware/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompetitorRule selects how the competitor reference price is derived.
type CompetitorRule string

const (
	CompetitorRuleCheapest CompetitorRule = "cheapest"
	CompetitorRuleAverage  CompetitorRule = "average"
)

// Valid checks if the rule is valid.
func (r CompetitorRule) Valid() bool {
	switch r {
	case CompetitorRuleCheapest, CompetitorRuleAverage:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CompetitorRule.
func (r *CompetitorRule) Scan(value any) error {
	if value == nil {
		*r = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*r = CompetitorRule(v)
	case []byte:
		*r = CompetitorRule(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CompetitorRule", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CompetitorRule.
func (r CompetitorRule) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid CompetitorRule: %s", r)
	}
	return string(r), nil
}

// PricingSettings is the singleton configuring the pricing engine.
// MinimumMargin is stored in percent.
type PricingSettings struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitorRule CompetitorRule  `gorm:"type:varchar(20);not null;default:'cheapest'" json:"competitor_rule"`
	MinimumMargin  decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"minimum_margin"`
	UndercutValue  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"undercut_value"`
	UpdatedBy      *uint           `json:"updated_by,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PricingSettings) TableName() string { return "pricing_settings" }

// NormalisedMinimumMargin returns the margin as a fraction.
func (s *PricingSettings) NormalisedMinimumMargin() decimal.Decimal {
	return s.MinimumMargin.Div(decimal.NewFromInt(100))
}

// BeforeCreate ensures timestamps are set.
func (s *PricingSettings) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = utils.UTCNow()
	}
	return nil
}
