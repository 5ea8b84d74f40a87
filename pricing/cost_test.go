package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveCost(t *testing.T) {
	headers := []PromotionHeader{
		{ActionCode: "A100", ActionType: "03", Window: Window{From: day(2026, 3, 1), To: day(2026, 3, 31)}},
		{ActionCode: "A200", ActionType: "3"},
		{ActionCode: "A300", ActionType: "05", Window: Window{From: day(2026, 3, 1), To: day(2026, 3, 31)}},
		{ActionCode: "A400", ActionType: "3", Window: Window{From: day(2026, 1, 1), To: day(2026, 1, 31)}},
	}

	tests := []struct {
		name   string
		static decimal.NullDecimal
		lines  []PromotionPriceLine
		want   string
		wantOK bool
	}{
		{
			name:   "static cost without promotions",
			static: nullDec("10.00"),
			want:   "10.00",
			wantOK: true,
		},
		{
			name:   "missing static cost is unresolved",
			static: decimal.NullDecimal{},
			lines:  []PromotionPriceLine{{ID: 1, ProductID: 1, ActionCode: "A100", PromotionalPurchasePrice: nullDec("8.00")}},
			wantOK: false,
		},
		{
			name:   "zero static cost is unresolved",
			static: nullDec("0"),
			wantOK: false,
		},
		{
			name:   "promotion inside header window overrides",
			static: nullDec("10.00"),
			lines:  []PromotionPriceLine{{ID: 1, ProductID: 1, ActionCode: "A100", PromotionalPurchasePrice: nullDec("8.00")}},
			want:   "8.00",
			wantOK: true,
		},
		{
			name:   "promotion without any window is valid",
			static: nullDec("10.00"),
			lines:  []PromotionPriceLine{{ID: 1, ProductID: 1, ActionCode: "A200", PromotionalPurchasePrice: nullDec("7.50")}},
			want:   "7.50",
			wantOK: true,
		},
		{
			name:   "line window takes precedence over expired header window",
			static: nullDec("10.00"),
			lines: []PromotionPriceLine{{
				ID: 1, ProductID: 1, ActionCode: "A400",
				PromotionalPurchasePrice: nullDec("6.00"),
				Window:                   Window{From: day(2026, 3, 10), To: day(2026, 3, 20)},
			}},
			want:   "6.00",
			wantOK: true,
		},
		{
			name:   "expired header window is ignored",
			static: nullDec("10.00"),
			lines:  []PromotionPriceLine{{ID: 1, ProductID: 1, ActionCode: "A400", PromotionalPurchasePrice: nullDec("6.00")}},
			want:   "10.00",
			wantOK: true,
		},
		{
			name:   "line with only one bound falls back to header window",
			static: nullDec("10.00"),
			lines: []PromotionPriceLine{{
				ID: 1, ProductID: 1, ActionCode: "A400",
				PromotionalPurchasePrice: nullDec("6.00"),
				Window:                   Window{From: day(2026, 3, 10)},
			}},
			want:   "10.00",
			wantOK: true,
		},
		{
			name:   "gift action type does not override cost",
			static: nullDec("10.00"),
			lines:  []PromotionPriceLine{{ID: 1, ProductID: 1, ActionCode: "A300", PromotionalPurchasePrice: nullDec("5.00")}},
			want:   "10.00",
			wantOK: true,
		},
		{
			name:   "unknown header is skipped",
			static: nullDec("10.00"),
			lines:  []PromotionPriceLine{{ID: 1, ProductID: 1, ActionCode: "Z999", PromotionalPurchasePrice: nullDec("5.00")}},
			want:   "10.00",
			wantOK: true,
		},
		{
			name:   "non-positive promotional price is skipped",
			static: nullDec("10.00"),
			lines: []PromotionPriceLine{
				{ID: 1, ProductID: 1, ActionCode: "A100", PromotionalPurchasePrice: nullDec("0")},
				{ID: 2, ProductID: 1, ActionCode: "A200", PromotionalPurchasePrice: nullDec("9.00")},
			},
			want:   "9.00",
			wantOK: true,
		},
		{
			name:   "first line by action code wins",
			static: nullDec("10.00"),
			lines: []PromotionPriceLine{
				{ID: 1, ProductID: 1, ActionCode: "A200", PromotionalPurchasePrice: nullDec("4.00")},
				{ID: 2, ProductID: 1, ActionCode: "A100", PromotionalPurchasePrice: nullDec("9.00")},
			},
			want:   "9.00",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewPromotionBook(headers, tt.lines, nil)
			got, ok := ResolveCost(1, tt.static, book, testToday)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestWindow_Contains(t *testing.T) {
	w := Window{From: day(2026, 3, 15), To: day(2026, 3, 15)}
	assert.True(t, w.Contains(testToday))
	assert.False(t, w.Contains(testToday.Add(24*time.Hour)))
	assert.True(t, Window{}.Contains(testToday))
}
