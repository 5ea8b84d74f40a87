package pricing

import (
	"strings"
	"time"

	"github.com/jasado/jasado-middleware/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// giftActionTypes are the promotion action types granting free goods.
var giftActionTypes = map[string]struct{}{
	"5": {}, "05": {},
	"6": {}, "06": {},
	"7": {}, "07": {},
}

// GiftOffer is a "buy MinQty, pay PaidQty" promotion applied to a product.
// GiftCOGS is the per-unit cost once the free units are spread over the bundle.
type GiftOffer struct {
	GiftCOGS   decimal.Decimal
	MinQty     int
	FreeQty    int
	PaidQty    int
	ValidFrom  *time.Time
	ValidUntil *time.Time
	PromoCode  string
	ActionType string
}

// EvaluateGift returns the first applicable gift promotion among the position
// lines of a product, or nil. Blocked action codes, non-gift action types,
// invalid free quantities and expired headers are skipped. Quantities are
// truncated to whole units before the gift cost is derived.
func EvaluateGift(productID uint, cogs decimal.Decimal, book *PromotionBook, today time.Time, logger logrus.FieldLogger) *GiftOffer {
	if book == nil {
		return nil
	}

	for _, pos := range book.Positions(productID) {
		if book.IsBlocked(pos.ActionCode) {
			continue
		}
		header, ok := book.Header(pos.ActionCode)
		if !ok {
			continue
		}
		if _, isGift := giftActionTypes[header.ActionType]; !isGift {
			continue
		}

		free, err := parseQty(header.NaturalDiscountQty)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"product_id":  productID,
				"action_code": header.ActionCode,
				"value":       utils.StringValue(header.NaturalDiscountQty),
			}).WithError(err).Error("Invalid natural discount quantity")
			continue
		}
		if !free.IsPositive() {
			continue
		}

		if header.Window.Bounded() && !header.Window.Contains(today) {
			continue
		}

		total := decimal.Zero
		if header.MinQty != nil && strings.TrimSpace(*header.MinQty) != "" {
			total, err = parseQty(header.MinQty)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"product_id":  productID,
					"action_code": header.ActionCode,
					"value":       *header.MinQty,
				}).WithError(err).Error("Invalid minimum quantity")
				continue
			}
		}

		freeQty := free.Truncate(0)
		totalQty := total.Truncate(0)
		if !freeQty.IsPositive() || !totalQty.GreaterThan(freeQty) {
			continue
		}

		paidQty := totalQty.Sub(freeQty)
		return &GiftOffer{
			GiftCOGS:   cogs.Mul(paidQty).Div(totalQty),
			MinQty:     int(totalQty.IntPart()),
			FreeQty:    int(freeQty.IntPart()),
			PaidQty:    int(paidQty.IntPart()),
			ValidFrom:  header.Window.From,
			ValidUntil: header.Window.To,
			PromoCode:  header.ActionCode,
			ActionType: header.ActionType,
		}
	}
	return nil
}

// parseQty parses a quantity string from the supplier feed. Nil is an error.
func parseQty(raw *string) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Zero, errMissingQty
	}
	return decimal.NewFromString(strings.TrimSpace(*raw))
}
