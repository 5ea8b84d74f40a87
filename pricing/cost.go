package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// costActionTypes are the promotion action types carrying a purchase price.
var costActionTypes = map[string]struct{}{"3": {}, "03": {}}

// ResolveCost returns the effective purchase cost of a product for today. A
// product without a positive static cost is unresolved, even when a promotion
// would apply. Otherwise the first valid promotional purchase price overrides
// the static cost.
func ResolveCost(productID uint, staticCost decimal.NullDecimal, book *PromotionBook, today time.Time) (decimal.Decimal, bool) {
	if !staticCost.Valid || !staticCost.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	if promo, ok := PromotionalCost(productID, book, today); ok {
		return promo, true
	}
	return staticCost.Decimal, true
}

// PromotionalCost scans the price lines of a product in action code order.
// A line qualifies when its header exists with a cost action type, it is
// valid today and it carries a positive promotional purchase price. The line's
// own window takes precedence over the header's.
func PromotionalCost(productID uint, book *PromotionBook, today time.Time) (decimal.Decimal, bool) {
	if book == nil {
		return decimal.Zero, false
	}
	for _, line := range book.PriceLines(productID) {
		header, ok := book.Header(line.ActionCode)
		if !ok {
			continue
		}
		if _, isCost := costActionTypes[header.ActionType]; !isCost {
			continue
		}

		window := header.Window
		if line.Window.Bounded() {
			window = line.Window
		}
		if !window.Contains(today) {
			continue
		}

		if line.PromotionalPurchasePrice.Valid && line.PromotionalPurchasePrice.Decimal.IsPositive() {
			return line.PromotionalPurchasePrice.Decimal, true
		}
	}
	return decimal.Zero, false
}
