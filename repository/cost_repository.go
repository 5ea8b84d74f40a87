package repository

import (
	"context"
	"fmt"

	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostRepositoryImpl implements CostRepository and StockRepository
type CostRepositoryImpl struct {
	*BaseRepository[models.GLSPriceList, struct{}]
}

// NewCostRepository creates a new cost repository
func NewCostRepository(db *gorm.DB) *CostRepositoryImpl {
	return &CostRepositoryImpl{
		BaseRepository: NewBaseRepository[models.GLSPriceList, struct{}](db),
	}
}

type productAmount struct {
	ProductID uint
	Amount    decimal.NullDecimal
}

// GLSPurchaseCosts returns bill back prices keyed by product. When several
// price list rows point to one product the most recent row wins.
func (r *CostRepositoryImpl) GLSPurchaseCosts(ctx context.Context) (map[uint]decimal.NullDecimal, error) {
	var rows []productAmount
	err := r.getDB(ctx).
		Model(&models.GLSPriceList{}).
		Select("product_id, bill_back_price AS amount").
		Where("product_id IS NOT NULL").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load GLS purchase costs: %w", err)
	}
	return amountsByProduct(rows), nil
}

// CalculationPrices returns article calculation prices keyed by product
func (r *CostRepositoryImpl) CalculationPrices(ctx context.Context) (map[uint]decimal.NullDecimal, error) {
	var rows []productAmount
	err := r.getDB(ctx).
		Model(&models.AdditionalMasterData{}).
		Select("product_id, article_calculation_price AS amount").
		Where("product_id IS NOT NULL").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load calculation prices: %w", err)
	}
	return amountsByProduct(rows), nil
}

// GLSStockByArticleNo returns warehouse inventory keyed by GLS article number
func (r *CostRepositoryImpl) GLSStockByArticleNo(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rows []models.GLSStockLevel
	if err := r.getDB(ctx).Select("article_no, inventory").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load GLS stock levels: %w", err)
	}
	stock := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		stock[row.ArticleNo] = row.Inventory
	}
	return stock, nil
}

// MasterDataStockByProduct returns the master data stock keyed by product
func (r *CostRepositoryImpl) MasterDataStockByProduct(ctx context.Context) (map[uint]decimal.Decimal, error) {
	var rows []productAmount
	err := r.getDB(ctx).
		Model(&models.AdditionalMasterData{}).
		Select("product_id, stock AS amount").
		Where("product_id IS NOT NULL").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load master data stock: %w", err)
	}
	stock := make(map[uint]decimal.Decimal, len(rows))
	for id, amount := range amountsByProduct(rows) {
		if amount.Valid {
			stock[id] = amount.Decimal
		}
	}
	return stock, nil
}

func amountsByProduct(rows []productAmount) map[uint]decimal.NullDecimal {
	out := make(map[uint]decimal.NullDecimal, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Amount
	}
	return out
}
