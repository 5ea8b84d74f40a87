package pricing

import (
	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SurchargeKind distinguishes percentage from absolute surcharges.
type SurchargeKind string

const (
	SurchargePercent  SurchargeKind = "percent"
	SurchargeAbsolute SurchargeKind = "absolute"
)

// Surcharge is a handling surcharge. Value is a fraction for percentages and
// an amount for absolute surcharges.
type Surcharge struct {
	Kind  SurchargeKind
	Value decimal.Decimal
}

// NoSurcharge is applied to products without a mapped article group.
var NoSurcharge = Surcharge{Kind: SurchargePercent, Value: decimal.Zero}

// IsAbsolute reports whether the surcharge is an absolute amount.
func (s Surcharge) IsAbsolute() bool {
	return s.Kind == SurchargeAbsolute
}

// Factor is the multiplier applied to the cost. Absolute surcharges are
// multiplied in as well, which mirrors how the figures were maintained.
func (s Surcharge) Factor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(s.Value)
}

// SurchargeTable maps article group numbers to surcharges.
type SurchargeTable map[string]Surcharge

// NewSurchargeTable builds the table from stored rows. Unknown fee types are
// treated as percentages.
func NewSurchargeTable(rows []models.HandlingSurcharge) SurchargeTable {
	table := make(SurchargeTable, len(rows))
	for _, row := range rows {
		if row.FeeType == models.FeeTypeAbsolute {
			table[row.ArticleGroupNo] = Surcharge{Kind: SurchargeAbsolute, Value: row.Value}
			continue
		}
		table[row.ArticleGroupNo] = Surcharge{Kind: SurchargePercent, Value: row.Value.Div(hundred)}
	}
	return table
}

// Lookup returns the surcharge of an article group, or NoSurcharge.
func (t SurchargeTable) Lookup(articleGroupNo *string) Surcharge {
	if articleGroupNo == nil {
		return NoSurcharge
	}
	if s, ok := t[*articleGroupNo]; ok {
		return s
	}
	return NoSurcharge
}
