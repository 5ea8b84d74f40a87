package businessflow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceHistoryFlowList(t *testing.T) {
	runID := uuid.New()
	history := &fakeHistoryRepo{}
	for i := range 3 {
		history.rows = append(history.rows, &models.ProductPriceHistory{
			ID:             uint(10 - i),
			RunID:          runID,
			ProductID:      1,
			AeraSalesPrice: nd("14.9"),
			GiftMinQty:     utils.ToPtr(10),
			GiftValidFrom:  date(2026, 3, 1),
			CalculatedAt:   runTime,
		})
	}
	history.rows = append(history.rows, &models.ProductPriceHistory{ID: 20, ProductID: 2, CalculatedAt: runTime})

	products := &fakeProductRepo{products: map[uint]*models.Product{
		1: {ID: 1},
		2: {ID: 2},
	}}
	flow := NewPriceHistoryFlow(products, history)

	t.Run("FirstPage", func(t *testing.T) {
		got, err := flow.ListPriceHistory(context.Background(), &dto.ListPriceHistoryRequest{ProductID: 1, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, got.Total)
		assert.Equal(t, 2, got.Limit)
		require.Len(t, got.Items, 2)

		item := got.Items[0]
		assert.Equal(t, uint(10), item.ID)
		assert.Equal(t, runID.String(), item.RunID)
		require.NotNil(t, item.AeraSalesPrice)
		assert.Equal(t, "14.90", *item.AeraSalesPrice)
		assert.Nil(t, item.WawiboxSalesPrice)
		require.NotNil(t, item.GiftValidFrom)
		assert.Equal(t, "2026-03-01", *item.GiftValidFrom)
		assert.Equal(t, "2026-03-15T03:00:00Z", item.CalculatedAt)
	})

	t.Run("DefaultPageSize", func(t *testing.T) {
		got, err := flow.ListPriceHistory(context.Background(), &dto.ListPriceHistoryRequest{ProductID: 1, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, defaultHistoryPageSize, got.Limit)
		assert.Len(t, got.Items, 1)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		_, err := flow.ListPriceHistory(context.Background(), &dto.ListPriceHistoryRequest{ProductID: 99})
		assert.True(t, IsProductNotFound(err))
	})

	t.Run("MissingProductID", func(t *testing.T) {
		_, err := flow.ListPriceHistory(context.Background(), &dto.ListPriceHistoryRequest{})
		assert.Error(t, err)
	})
}
