package pricing

import (
	"time"

	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/utils"
	"gorm.io/datatypes"
)

// BookFromModels builds a PromotionBook from stored promotion rows. Rows
// without an action code are ignored, as are price lines without a product.
func BookFromModels(headers []models.PromotionHeader, prices []models.PromotionPrice, positions []models.PromotionPosition) *PromotionBook {
	hs := make([]PromotionHeader, 0, len(headers))
	for _, h := range headers {
		if h.ActionCode == nil {
			continue
		}
		hs = append(hs, PromotionHeader{
			ActionCode:         *h.ActionCode,
			ActionType:         utils.StringValue(h.ActionType),
			Window:             windowOf(h.ValidFrom, h.ValidTo),
			NaturalDiscountQty: h.NaturalDiscountQty,
			MinQty:             h.MinQty,
		})
	}

	ps := make([]PromotionPriceLine, 0, len(prices))
	for _, p := range prices {
		if p.ProductID == nil || p.ActionCode == nil {
			continue
		}
		ps = append(ps, PromotionPriceLine{
			ID:                       p.ID,
			ProductID:                *p.ProductID,
			ActionCode:               *p.ActionCode,
			PromotionalPurchasePrice: p.PromotionalPurchasePrice,
			Window:                   windowOf(p.ValidFrom, p.ValidTo),
		})
	}

	pos := make([]PromotionPositionLine, 0, len(positions))
	for _, p := range positions {
		if p.ActionCode == nil {
			continue
		}
		// unlinked positions still contribute to the blocked set
		line := PromotionPositionLine{
			ID:          p.ID,
			ActionCode:  *p.ActionCode,
			QtyEditable: utils.StringValue(p.QtyEditable),
		}
		if p.ProductID != nil {
			line.ProductID = *p.ProductID
		}
		pos = append(pos, line)
	}

	return NewPromotionBook(hs, ps, pos)
}

func windowOf(from, to *datatypes.Date) Window {
	return Window{From: dateToTime(from), To: dateToTime(to)}
}

func dateToTime(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}
