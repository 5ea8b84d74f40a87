package pricing

import (
	"testing"

	"github.com/jasado/jasado-middleware/models"
	"github.com/stretchr/testify/assert"
)

func TestSurchargeTable(t *testing.T) {
	table := NewSurchargeTable([]models.HandlingSurcharge{
		{ArticleGroupNo: "100", FeeType: models.FeeTypePercent, Value: dec("10")},
		{ArticleGroupNo: "200", FeeType: models.FeeTypeAbsolute, Value: dec("2.50")},
	})

	t.Run("percent is normalised", func(t *testing.T) {
		s := table.Lookup(str("100"))
		assert.False(t, s.IsAbsolute())
		assert.True(t, dec("0.1").Equal(s.Value))
		assert.True(t, dec("1.1").Equal(s.Factor()))
	})

	t.Run("absolute keeps its amount", func(t *testing.T) {
		s := table.Lookup(str("200"))
		assert.True(t, s.IsAbsolute())
		assert.True(t, dec("2.50").Equal(s.Value))
	})

	t.Run("unmapped and missing groups have no surcharge", func(t *testing.T) {
		assert.Equal(t, NoSurcharge, table.Lookup(str("999")))
		assert.Equal(t, NoSurcharge, table.Lookup(nil))
	})
}
