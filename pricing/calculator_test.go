package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculator_SalesPrice(t *testing.T) {
	tenPercent := Surcharge{Kind: SurchargePercent, Value: dec("0.10")}

	tests := []struct {
		name        string
		settings    Settings
		cogs        string
		surcharge   Surcharge
		competitors []decimal.Decimal
		want        string
	}{
		{
			name:      "no competitors returns base price",
			settings:  Settings{Rule: RuleCheapest, MinimumMargin: dec("0.02"), Undercut: dec("0.05")},
			cogs:      "10.00",
			surcharge: tenPercent,
			want:      "11.22",
		},
		{
			name:        "cheapest above base is undercut",
			settings:    Settings{Rule: RuleCheapest, MinimumMargin: dec("0.02"), Undercut: dec("0.05")},
			cogs:        "10.00",
			surcharge:   tenPercent,
			competitors: []decimal.Decimal{dec("16.00"), dec("15.00")},
			want:        "14.95",
		},
		{
			name:        "base above cheapest stands",
			settings:    Settings{Rule: RuleCheapest, MinimumMargin: dec("0.02"), Undercut: dec("0.05")},
			cogs:        "10.00",
			surcharge:   tenPercent,
			competitors: []decimal.Decimal{dec("10.50"), dec("10.00")},
			want:        "11.22",
		},
		{
			name:        "average of three cheapest",
			settings:    Settings{Rule: RuleAverage, MinimumMargin: dec("0.02"), Undercut: dec("0.50")},
			cogs:        "10.00",
			surcharge:   tenPercent,
			competitors: []decimal.Decimal{dec("25.00"), dec("20.00"), dec("22.00"), dec("30.00")},
			want:        "21.83",
		},
		{
			name:        "average divides by three with fewer competitors",
			settings:    Settings{Rule: RuleAverage, MinimumMargin: dec("0"), Undercut: dec("1.00")},
			cogs:        "5.00",
			surcharge:   NoSurcharge,
			competitors: []decimal.Decimal{dec("30.00"), dec("30.00")},
			want:        "19.00",
		},
		{
			name:        "base equal to reference is undercut",
			settings:    Settings{Rule: RuleCheapest, MinimumMargin: dec("0"), Undercut: dec("0.10")},
			cogs:        "10.00",
			surcharge:   NoSurcharge,
			competitors: []decimal.Decimal{dec("10.00")},
			want:        "9.90",
		},
		{
			name:        "undercut to zero falls back to base",
			settings:    Settings{Rule: RuleCheapest, MinimumMargin: dec("0"), Undercut: dec("5.00")},
			cogs:        "1.00",
			surcharge:   NoSurcharge,
			competitors: []decimal.Decimal{dec("5.00")},
			want:        "1.00",
		},
		{
			name:      "absolute surcharge is applied as a factor",
			settings:  Settings{Rule: RuleCheapest, MinimumMargin: dec("0")},
			cogs:      "2.00",
			surcharge: Surcharge{Kind: SurchargeAbsolute, Value: dec("5.00")},
			want:      "12.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.settings)
			got := RoundMoney(calc.SalesPrice(dec(tt.cogs), tt.surcharge, tt.competitors))
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCalculator_ReferencePriceDoesNotReorderInput(t *testing.T) {
	calc := NewCalculator(Settings{Rule: RuleCheapest})
	prices := []decimal.Decimal{dec("3"), dec("1"), dec("2")}

	ref, ok := calc.ReferencePrice(prices)

	assert.True(t, ok)
	assert.True(t, dec("1").Equal(ref))
	assert.True(t, dec("3").Equal(prices[0]))
}

func TestCalculator_ReferencePriceWithoutCompetitors(t *testing.T) {
	calc := NewCalculator(Settings{Rule: RuleAverage})
	_, ok := calc.ReferencePrice(nil)
	assert.False(t, ok)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "22.33", RoundMoney(dec("67").Div(dec("3"))).StringFixed(2))
	assert.Equal(t, "0.13", RoundMoney(dec("0.125")).StringFixed(2))
	assert.Equal(t, "11.22", RoundMoney(dec("11.220000")).StringFixed(2))
}
