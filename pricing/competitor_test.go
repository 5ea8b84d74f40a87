package pricing

import (
	"testing"

	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestAeraCompetitorPrices(t *testing.T) {
	rows := []models.AeraCompetitorPrice{
		{ProductID: uintPtr(1), NetTop1: nullDec("12.00"), NetTop2: nullDec("0"), NetTop3: decimal.NullDecimal{}},
		{ProductID: uintPtr(2), NetTop1: nullDec("0")},
		{ProductID: nil, NetTop1: nullDec("5.00")},
		{ProductID: uintPtr(3), NetTop1: nullDec("9.00"), NetTop2: nullDec("7.00"), NetTop3: nullDec("8.00")},
	}

	got := AeraCompetitorPrices(rows)

	require.Len(t, got, 2)
	assert.Len(t, got[1], 1)
	assert.True(t, dec("12").Equal(got[1][0]))
	assert.NotContains(t, got, uint(2))

	sorted := got.For(3)
	require.Len(t, sorted, 3)
	assert.True(t, dec("7").Equal(sorted[0]))
	assert.True(t, dec("9").Equal(sorted[2]))
	assert.Empty(t, got.For(42))
}

func TestWawiboxCompetitorPrices(t *testing.T) {
	own := "468312"
	other := "1000"
	rows := []models.WawiboxCompetitorPrice{
		{
			ProductID: uintPtr(1),
			NetTop1:   nullDec("9.00"),
			VendorID1: &own,
			NetTop2:   nullDec("10.00"),
			VendorID2: &other,
			NetTop3:   nullDec("0"),
			VendorID3: &other,
			NetTop6:   nullDec("11.00"),
		},
		{
			ProductID: uintPtr(2),
			NetTop1:   nullDec("9.00"),
			VendorID1: &own,
		},
	}

	got := WawiboxCompetitorPrices(rows, own)

	require.Contains(t, got, uint(1))
	assert.NotContains(t, got, uint(2))
	prices := got.For(1)
	require.Len(t, prices, 2)
	assert.True(t, dec("10").Equal(prices[0]))
	assert.True(t, dec("11").Equal(prices[1]))
}
