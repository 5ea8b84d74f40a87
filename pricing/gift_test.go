package pricing

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func giftHeader(code, actionType, natural, minQty string) PromotionHeader {
	return PromotionHeader{
		ActionCode:         code,
		ActionType:         actionType,
		Window:             Window{From: day(2026, 3, 1), To: day(2026, 3, 31)},
		NaturalDiscountQty: str(natural),
		MinQty:             str(minQty),
	}
}

func TestEvaluateGift(t *testing.T) {
	tests := []struct {
		name      string
		headers   []PromotionHeader
		positions []PromotionPositionLine
		wantCode  string
		wantCOGS  string
		wantPaid  int
		wantNil   bool
		wantError bool
	}{
		{
			name:      "buy ten get two free",
			headers:   []PromotionHeader{giftHeader("G1", "05", "2", "10")},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantCode:  "G1",
			wantCOGS:  "8.00",
			wantPaid:  8,
		},
		{
			name:    "blocked code from another product is skipped",
			headers: []PromotionHeader{giftHeader("G1", "6", "2", "10")},
			positions: []PromotionPositionLine{
				{ID: 1, ProductID: 1, ActionCode: "G1"},
				{ID: 2, ProductID: 2, ActionCode: "G1", QtyEditable: "1"},
			},
			wantNil: true,
		},
		{
			name:      "non gift action type is skipped",
			headers:   []PromotionHeader{giftHeader("G1", "03", "2", "10")},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantNil:   true,
		},
		{
			name:      "unparsable free quantity is logged and skipped",
			headers:   []PromotionHeader{giftHeader("G1", "07", "two", "10")},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantNil:   true,
			wantError: true,
		},
		{
			name:      "zero free quantity is skipped",
			headers:   []PromotionHeader{giftHeader("G1", "05", "0", "10")},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantNil:   true,
		},
		{
			name:      "minimum not above free quantity is skipped",
			headers:   []PromotionHeader{giftHeader("G1", "05", "2", "2")},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantNil:   true,
		},
		{
			name: "expired header is skipped",
			headers: []PromotionHeader{{
				ActionCode: "G1", ActionType: "05",
				Window:             Window{From: day(2026, 1, 1), To: day(2026, 1, 31)},
				NaturalDiscountQty: str("1"),
				MinQty:             str("4"),
			}},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantNil:   true,
		},
		{
			name: "header with a single bound is always valid",
			headers: []PromotionHeader{{
				ActionCode: "G1", ActionType: "5",
				Window:             Window{To: day(2026, 1, 31)},
				NaturalDiscountQty: str("1"),
				MinQty:             str("4"),
			}},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantCode:  "G1",
			wantCOGS:  "7.50",
			wantPaid:  3,
		},
		{
			name:      "fractional quantities are truncated",
			headers:   []PromotionHeader{giftHeader("G1", "05", "1.9", "5.7")},
			positions: []PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
			wantCode:  "G1",
			wantCOGS:  "8.00",
			wantPaid:  4,
		},
		{
			name: "first qualifying code wins",
			headers: []PromotionHeader{
				giftHeader("G2", "05", "1", "2"),
				giftHeader("G1", "03", "1", "2"),
				giftHeader("G3", "05", "2", "10"),
			},
			positions: []PromotionPositionLine{
				{ID: 3, ProductID: 1, ActionCode: "G3"},
				{ID: 1, ProductID: 1, ActionCode: "G1"},
				{ID: 2, ProductID: 1, ActionCode: "G2"},
			},
			wantCode: "G2",
			wantCOGS: "5.00",
			wantPaid: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			book := NewPromotionBook(tt.headers, nil, tt.positions)

			offer := EvaluateGift(1, dec("10.00"), book, testToday, logger)

			if tt.wantNil {
				assert.Nil(t, offer)
			} else {
				require.NotNil(t, offer)
				assert.Equal(t, tt.wantCode, offer.PromoCode)
				assert.Equal(t, tt.wantPaid, offer.PaidQty)
				assert.Equal(t, offer.MinQty, offer.PaidQty+offer.FreeQty)
				assert.True(t, dec(tt.wantCOGS).Equal(RoundMoney(offer.GiftCOGS)), "gift cogs %s", offer.GiftCOGS)
			}

			if tt.wantError {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
			} else {
				assert.Empty(t, hook.Entries)
			}
		})
	}
}

func TestEvaluateGift_CarriesWindowAndType(t *testing.T) {
	logger, _ := test.NewNullLogger()
	book := NewPromotionBook(
		[]PromotionHeader{giftHeader("G1", "06", "2", "10")},
		nil,
		[]PromotionPositionLine{{ID: 1, ProductID: 1, ActionCode: "G1"}},
	)

	offer := EvaluateGift(1, dec("10"), book, testToday, logger)

	require.NotNil(t, offer)
	assert.Equal(t, "06", offer.ActionType)
	assert.Equal(t, 10, offer.MinQty)
	assert.Equal(t, 2, offer.FreeQty)
	require.NotNil(t, offer.ValidFrom)
	require.NotNil(t, offer.ValidUntil)
	assert.Equal(t, *day(2026, 3, 31), *offer.ValidUntil)
}

func TestPromotionBook_BlockedCodes(t *testing.T) {
	book := NewPromotionBook(nil, nil, []PromotionPositionLine{
		{ID: 1, ProductID: 0, ActionCode: "B1", QtyEditable: "1"},
		{ID: 2, ProductID: 5, ActionCode: "B2", QtyEditable: "0"},
	})

	assert.True(t, book.IsBlocked("B1"))
	assert.False(t, book.IsBlocked("B2"))
	assert.Equal(t, 1, book.BlockedCodes())
}
