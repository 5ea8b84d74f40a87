package pricing

import (
	"slices"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Calculator applies the sales price formula with run-wide settings.
type Calculator struct {
	Settings Settings
}

// NewCalculator creates a calculator for the given settings.
func NewCalculator(settings Settings) *Calculator {
	return &Calculator{Settings: settings}
}

// BasePrice is the cost marked up by surcharge and minimum margin.
func (c *Calculator) BasePrice(cogs decimal.Decimal, surcharge Surcharge) decimal.Decimal {
	return cogs.Mul(surcharge.Factor()).Mul(one.Add(c.Settings.MinimumMargin))
}

// ReferencePrice derives the competitor reference price. The average rule
// divides the three cheapest by 3 even when fewer exist.
func (c *Calculator) ReferencePrice(prices []decimal.Decimal) (decimal.Decimal, bool) {
	if len(prices) == 0 {
		return decimal.Zero, false
	}
	sorted := slices.Clone(prices)
	slices.SortFunc(sorted, decimal.Decimal.Cmp)

	if c.Settings.Rule == RuleAverage {
		sum := decimal.Zero
		for _, p := range sorted[:min(3, len(sorted))] {
			sum = sum.Add(p)
		}
		return sum.Div(averageDivisor), true
	}
	return sorted[0], true
}

// SalesPrice returns the unrounded sales price. The base price stands when it
// is above the competitor reference; otherwise the reference is undercut.
//
// An undercut that would not leave a positive price falls back to the base
// price. The legacy engine returned reference - undercut unconditionally and
// could store zero or negative prices; this one keeps every price positive.
func (c *Calculator) SalesPrice(cogs decimal.Decimal, surcharge Surcharge, competitors []decimal.Decimal) decimal.Decimal {
	base := c.BasePrice(cogs, surcharge)

	ref, ok := c.ReferencePrice(competitors)
	if !ok {
		return base
	}
	if base.GreaterThan(ref) {
		return base
	}

	undercut := ref.Sub(c.Settings.Undercut)
	if !undercut.IsPositive() {
		return base
	}
	return undercut
}
