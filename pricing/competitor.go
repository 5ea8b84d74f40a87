package pricing

import (
	"slices"

	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
)

// CompetitorPrices maps a product to the usable net prices of its competitors.
type CompetitorPrices map[uint][]decimal.Decimal

// For returns the competitor prices of a product in ascending order.
func (c CompetitorPrices) For(productID uint) []decimal.Decimal {
	sorted := slices.Clone(c[productID])
	slices.SortFunc(sorted, decimal.Decimal.Cmp)
	return sorted
}

// AeraCompetitorPrices collects the three top net prices per product, dropping
// empty and zero slots. A later snapshot row for the same product replaces an
// earlier one.
func AeraCompetitorPrices(rows []models.AeraCompetitorPrice) CompetitorPrices {
	out := make(CompetitorPrices, len(rows))
	for _, row := range rows {
		if row.ProductID == nil {
			continue
		}
		var prices []decimal.Decimal
		for _, p := range []decimal.NullDecimal{row.NetTop1, row.NetTop2, row.NetTop3} {
			if usable(p) {
				prices = append(prices, p.Decimal)
			}
		}
		if len(prices) > 0 {
			out[*row.ProductID] = prices
		}
	}
	return out
}

// WawiboxCompetitorPrices collects the six top net prices per product, dropping
// empty and zero slots as well as slots held by ownVendorID.
func WawiboxCompetitorPrices(rows []models.WawiboxCompetitorPrice, ownVendorID string) CompetitorPrices {
	out := make(CompetitorPrices, len(rows))
	for i := range rows {
		row := &rows[i]
		if row.ProductID == nil {
			continue
		}
		var prices []decimal.Decimal
		for _, offer := range row.Offers() {
			if offer.VendorID != nil && *offer.VendorID == ownVendorID {
				continue
			}
			if usable(offer.Price) {
				prices = append(prices, offer.Price.Decimal)
			}
		}
		if len(prices) > 0 {
			out[*row.ProductID] = prices
		}
	}
	return out
}

func usable(p decimal.NullDecimal) bool {
	return p.Valid && !p.Decimal.IsZero()
}
