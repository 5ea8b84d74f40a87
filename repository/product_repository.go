package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductRepositoryImpl implements ProductRepository interface
type ProductRepositoryImpl struct {
	*BaseRepository[models.Product, models.ProductFilter]
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Product, models.ProductFilter](db),
	}
}

// PricingCandidates returns id and article group of all products of a supplier
func (r *ProductRepositoryImpl) PricingCandidates(ctx context.Context, supplier string) ([]models.PricingCandidate, error) {
	var rows []models.PricingCandidate
	err := r.getDB(ctx).
		Model(&models.Product{}).
		Select("id, supplier, article_group_no").
		Where("supplier = ?", supplier).
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing candidates: %w", err)
	}
	return rows, nil
}

// maxApplyBatchSize keeps one chunk's CASE statement under the Postgres
// limit of 65535 bind parameters.
const maxApplyBatchSize = 2000

// pricingColumnOrder lists the columns written by ApplyPricing
var pricingColumnOrder = []string{
	"aera_sales_price",
	"wawibox_sales_price",
	"aera_gift_sales_price",
	"wawibox_gift_sales_price",
	"gift_min_qty",
	"gift_free_qty",
	"gift_paid_qty",
	"gift_valid_from",
	"gift_valid_until",
	"gift_promo_code",
	"gift_action_type",
	"has_gift_price",
}

// ApplyPricing writes the result of a pricing run with one UPDATE per chunk of
// batchSize products. Gift columns are always written so a stale gift is
// cleared; price columns are kept for updates without prices.
func (r *ProductRepositoryImpl) ApplyPricing(ctx context.Context, updates []models.ProductPricingUpdate, batchSize int) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	if batchSize <= 0 || batchSize > maxApplyBatchSize {
		batchSize = maxApplyBatchSize
	}

	var affected int64
	err := r.write(ctx, func(db *gorm.DB) error {
		now := utils.UTCNow()
		for _, chunk := range utils.Chunk(updates, batchSize) {
			ids := make([]uint, len(chunk))
			for i, u := range chunk {
				ids[i] = u.ProductID
			}

			res := db.Model(&models.Product{}).
				Where("id IN ?", ids).
				Updates(chunkAssignments(chunk, now))
			if res.Error != nil {
				return fmt.Errorf("failed to update prices of %d products starting at %d: %w", len(chunk), ids[0], res.Error)
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// chunkAssignments turns per-product column values into one CASE expression
// per column. Products that do not set a column keep its current value.
func chunkAssignments(chunk []models.ProductPricingUpdate, now time.Time) map[string]any {
	perProduct := make([]map[string]any, len(chunk))
	for i, u := range chunk {
		perProduct[i] = pricingColumns(u)
	}

	assignments := map[string]any{"updated_at": now}
	for _, column := range pricingColumnOrder {
		var sql strings.Builder
		var args []any
		sql.WriteString("CASE id")
		for i, cols := range perProduct {
			value, ok := cols[column]
			if !ok {
				continue
			}
			sql.WriteString(" WHEN ? THEN ?")
			args = append(args, chunk[i].ProductID, value)
		}
		if len(args) == 0 {
			continue
		}
		sql.WriteString(" ELSE " + column + " END")
		assignments[column] = gorm.Expr(sql.String(), args...)
	}
	return assignments
}

func pricingColumns(u models.ProductPricingUpdate) map[string]any {
	cols := map[string]any{}
	if u.HasPrices {
		cols["aera_sales_price"] = u.AeraSalesPrice
		cols["wawibox_sales_price"] = u.WawiboxSalesPrice
	}

	if g := u.Gift; g != nil {
		cols["aera_gift_sales_price"] = g.AeraGiftSalesPrice
		cols["wawibox_gift_sales_price"] = g.WawiboxGiftSalesPrice
		cols["gift_min_qty"] = g.MinQty
		cols["gift_free_qty"] = g.FreeQty
		cols["gift_paid_qty"] = g.PaidQty
		cols["gift_valid_from"] = toDate(g.ValidFrom)
		cols["gift_valid_until"] = toDate(g.ValidUntil)
		cols["gift_promo_code"] = g.PromoCode
		cols["gift_action_type"] = g.ActionType
		cols["has_gift_price"] = true
		return cols
	}

	for _, column := range pricingColumnOrder[2:] {
		cols[column] = nil
	}
	cols["has_gift_price"] = false
	return cols
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(utils.DateOf(*t))
	return &d
}

// ExportCandidates returns unblocked products with at least one channel price
func (r *ProductRepositoryImpl) ExportCandidates(ctx context.Context) ([]*models.Product, error) {
	return r.ByFilter(ctx, models.ProductFilter{
		IsBlocked:   utils.ToPtr(false),
		HasAnyPrice: utils.ToPtr(true),
	}, "id ASC", 0, 0)
}

// applyFilter applies filter criteria to a GORM query
func (r *ProductRepositoryImpl) applyFilter(query *gorm.DB, filter models.ProductFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.SKU != nil {
		query = query.Where("sku = ?", *filter.SKU)
	}
	if len(filter.SKUs) > 0 {
		query = query.Where("sku IN ?", filter.SKUs)
	}
	if filter.Supplier != nil {
		query = query.Where("supplier = ?", *filter.Supplier)
	}
	if filter.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filter.IsBlocked)
	}
	if filter.HasAnyPrice != nil {
		if *filter.HasAnyPrice {
			query = query.Where("(aera_sales_price IS NOT NULL OR wawibox_sales_price IS NOT NULL)")
		} else {
			query = query.Where("aera_sales_price IS NULL AND wawibox_sales_price IS NULL")
		}
	}
	return query
}

// ByFilter retrieves products based on filter criteria
func (r *ProductRepositoryImpl) ByFilter(ctx context.Context, filter models.ProductFilter, orderBy string, limit, offset int) ([]*models.Product, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.Product{}), filter)
	query = paginate(query, orderBy, limit, offset)

	var products []*models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of products matching the filter
func (r *ProductRepositoryImpl) Count(ctx context.Context, filter models.ProductFilter) (int64, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.Product{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any product matching the filter exists
func (r *ProductRepositoryImpl) Exists(ctx context.Context, filter models.ProductFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
