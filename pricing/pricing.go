// Package pricing implements the sales price engine: cost resolution, handling
// surcharges, gift promotions, competitor aggregation and the price formula.
// Everything here is pure; loaders hand in the reference data once per run.
package pricing

import (
	"time"

	"github.com/jasado/jasado-middleware/utils"
	"github.com/shopspring/decimal"
)

// CompetitorRule selects how the competitor reference price is derived.
type CompetitorRule string

const (
	RuleCheapest CompetitorRule = "cheapest"
	RuleAverage  CompetitorRule = "average"
)

// averageDivisor is the fixed divisor of the average rule, applied even when
// fewer than three competitors exist.
var averageDivisor = decimal.NewFromInt(3)

// Settings are the run-wide pricing parameters. MinimumMargin is a fraction.
type Settings struct {
	Rule          CompetitorRule
	MinimumMargin decimal.Decimal
	Undercut      decimal.Decimal
}

// Window is an optional validity period. Both bounds must be present for the
// window to restrict anything.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Bounded reports whether both bounds are set.
func (w Window) Bounded() bool {
	return w.From != nil && w.To != nil
}

// Contains reports whether day falls inside the window (inclusive). Unbounded
// windows contain every day.
func (w Window) Contains(day time.Time) bool {
	if !w.Bounded() {
		return true
	}
	return utils.DateWithin(day, *w.From, *w.To)
}

// RoundMoney rounds an amount to the stored precision of price columns.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
