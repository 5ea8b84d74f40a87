package businessflow

import (
	"context"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
)

const (
	defaultHistoryPageSize = 50
	historyOrder           = "calculated_at DESC, id DESC"
)

// PriceHistoryFlow pages through the price snapshots of a product
type PriceHistoryFlow interface {
	ListPriceHistory(ctx context.Context, req *dto.ListPriceHistoryRequest) (*dto.ListPriceHistoryResponse, error)
}

// PriceHistoryFlowImpl implements PriceHistoryFlow
type PriceHistoryFlowImpl struct {
	productRepo repository.ProductRepository
	historyRepo repository.PriceHistoryRepository
}

func NewPriceHistoryFlow(productRepo repository.ProductRepository, historyRepo repository.PriceHistoryRepository) PriceHistoryFlow {
	return &PriceHistoryFlowImpl{
		productRepo: productRepo,
		historyRepo: historyRepo,
	}
}

func (f *PriceHistoryFlowImpl) ListPriceHistory(ctx context.Context, req *dto.ListPriceHistoryRequest) (*dto.ListPriceHistoryResponse, error) {
	if req == nil || req.ProductID == 0 {
		return nil, NewBusinessError("INVALID_REQUEST", "product id is required", nil)
	}

	product, err := f.productRepo.ByID(ctx, req.ProductID)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LOOKUP_FAILED", "Failed to load product", err)
	}
	if product == nil {
		return nil, NewBusinessErrorf("PRODUCT_NOT_FOUND", "Product %d not found", ErrProductNotFound, req.ProductID)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	offset := max(req.Offset, 0)

	filter := models.ProductPriceHistoryFilter{ProductID: &req.ProductID}
	total, err := f.historyRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("PRICE_HISTORY_LOOKUP_FAILED", "Failed to count price history", err)
	}
	rows, err := f.historyRepo.ByFilter(ctx, filter, historyOrder, limit, offset)
	if err != nil {
		return nil, NewBusinessError("PRICE_HISTORY_LOOKUP_FAILED", "Failed to list price history", err)
	}

	items := make([]dto.PriceHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toPriceHistoryItem(row))
	}

	return &dto.ListPriceHistoryResponse{
		ProductID: req.ProductID,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		Items:     items,
	}, nil
}

func toPriceHistoryItem(row *models.ProductPriceHistory) dto.PriceHistoryItem {
	return dto.PriceHistoryItem{
		ID:                    row.ID,
		RunID:                 row.RunID.String(),
		AeraSalesPrice:        moneyString(row.AeraSalesPrice),
		WawiboxSalesPrice:     moneyString(row.WawiboxSalesPrice),
		AeraGiftSalesPrice:    moneyString(row.AeraGiftSalesPrice),
		WawiboxGiftSalesPrice: moneyString(row.WawiboxGiftSalesPrice),
		GiftMinQty:            row.GiftMinQty,
		GiftFreeQty:           row.GiftFreeQty,
		GiftPaidQty:           row.GiftPaidQty,
		GiftValidFrom:         dateString(row.GiftValidFrom),
		GiftValidUntil:        dateString(row.GiftValidUntil),
		CalculatedAt:          row.CalculatedAt.UTC().Format(time.RFC3339),
	}
}
