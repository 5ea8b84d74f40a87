package pricing

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// PromotionHeader is the engine view of a supplier promotion.
type PromotionHeader struct {
	ActionCode         string
	ActionType         string
	Window             Window
	NaturalDiscountQty *string
	MinQty             *string
}

// PromotionPriceLine is a promotional purchase price for one product.
type PromotionPriceLine struct {
	ID                       uint
	ProductID                uint
	ActionCode               string
	PromotionalPurchasePrice decimal.NullDecimal
	Window                   Window
}

// PromotionPositionLine is a promotion position for one product.
type PromotionPositionLine struct {
	ID          uint
	ProductID   uint
	ActionCode  string
	QtyEditable string
}

// PromotionBook indexes the promotion feeds of one run.
type PromotionBook struct {
	headers   map[string]PromotionHeader
	prices    map[uint][]PromotionPriceLine
	positions map[uint][]PromotionPositionLine
	blocked   map[string]struct{}
}

// NewPromotionBook indexes headers by action code and lines by product. Lines
// of a product are ordered by action code, then id, so first-match selection
// is deterministic. An action code is blocked for gifts when any of its
// position lines, for any product, has an editable quantity.
func NewPromotionBook(headers []PromotionHeader, prices []PromotionPriceLine, positions []PromotionPositionLine) *PromotionBook {
	b := &PromotionBook{
		headers:   make(map[string]PromotionHeader, len(headers)),
		prices:    make(map[uint][]PromotionPriceLine),
		positions: make(map[uint][]PromotionPositionLine),
		blocked:   make(map[string]struct{}),
	}

	for _, h := range headers {
		if _, exists := b.headers[h.ActionCode]; !exists {
			b.headers[h.ActionCode] = h
		}
	}
	for _, p := range prices {
		b.prices[p.ProductID] = append(b.prices[p.ProductID], p)
	}
	for _, p := range positions {
		b.positions[p.ProductID] = append(b.positions[p.ProductID], p)
		if p.QtyEditable == "1" {
			b.blocked[p.ActionCode] = struct{}{}
		}
	}

	for _, lines := range b.prices {
		slices.SortStableFunc(lines, func(a, b PromotionPriceLine) int {
			return cmp.Or(cmp.Compare(a.ActionCode, b.ActionCode), cmp.Compare(a.ID, b.ID))
		})
	}
	for _, lines := range b.positions {
		slices.SortStableFunc(lines, func(a, b PromotionPositionLine) int {
			return cmp.Or(cmp.Compare(a.ActionCode, b.ActionCode), cmp.Compare(a.ID, b.ID))
		})
	}

	return b
}

// Header returns the header of an action code.
func (b *PromotionBook) Header(actionCode string) (PromotionHeader, bool) {
	h, ok := b.headers[actionCode]
	return h, ok
}

// IsBlocked reports whether an action code is excluded from gift pricing.
func (b *PromotionBook) IsBlocked(actionCode string) bool {
	_, ok := b.blocked[actionCode]
	return ok
}

// BlockedCodes returns the number of blocked action codes.
func (b *PromotionBook) BlockedCodes() int {
	return len(b.blocked)
}

// PriceLines returns the ordered price lines of a product.
func (b *PromotionBook) PriceLines(productID uint) []PromotionPriceLine {
	return b.prices[productID]
}

// Positions returns the ordered position lines of a product.
func (b *PromotionBook) Positions(productID uint) []PromotionPositionLine {
	return b.positions[productID]
}
