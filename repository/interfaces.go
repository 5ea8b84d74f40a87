// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UnitOfWork runs fn atomically. Repositories called with the context handed to
// fn take part in the same transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductRepository defines operations for catalogue products
type ProductRepository interface {
	Repository[models.Product, models.ProductFilter]
	PricingCandidates(ctx context.Context, supplier string) ([]models.PricingCandidate, error)
	ApplyPricing(ctx context.Context, updates []models.ProductPricingUpdate, batchSize int) (int64, error)
	ExportCandidates(ctx context.Context) ([]*models.Product, error)
}

// PricingSettingsRepository defines operations for the pricing settings singleton
type PricingSettingsRepository interface {
	Current(ctx context.Context) (*models.PricingSettings, error)
	Upsert(ctx context.Context, settings *models.PricingSettings) error
}

// PriceHistoryRepository defines operations for product price history
type PriceHistoryRepository interface {
	Repository[models.ProductPriceHistory, models.ProductPriceHistoryFilter]
	SaveRun(ctx context.Context, rows []*models.ProductPriceHistory, batchSize int) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CostRepository loads purchase costs per product
type CostRepository interface {
	// GLSPurchaseCosts returns the bill back price of GLS products
	GLSPurchaseCosts(ctx context.Context) (map[uint]decimal.NullDecimal, error)
	// CalculationPrices returns the surcharge-inclusive cost of non-GLS products
	CalculationPrices(ctx context.Context) (map[uint]decimal.NullDecimal, error)
}

// StockRepository loads stock levels used by exports
type StockRepository interface {
	GLSStockByArticleNo(ctx context.Context) (map[string]decimal.Decimal, error)
	MasterDataStockByProduct(ctx context.Context) (map[uint]decimal.Decimal, error)
}

// SurchargeRepository defines operations for handling surcharges
type SurchargeRepository interface {
	All(ctx context.Context) ([]models.HandlingSurcharge, error)
}

// PromotionRepository loads the supplier promotion feeds
type PromotionRepository interface {
	Headers(ctx context.Context) ([]models.PromotionHeader, error)
	Prices(ctx context.Context) ([]models.PromotionPrice, error)
	Positions(ctx context.Context) ([]models.PromotionPosition, error)
}

// CompetitorPriceRepository loads competitor snapshots per channel
type CompetitorPriceRepository interface {
	Aera(ctx context.Context) ([]models.AeraCompetitorPrice, error)
	Wawibox(ctx context.Context) ([]models.WawiboxCompetitorPrice, error)
}

// ChannelListingRepository loads the SKUs listed on each channel
type ChannelListingRepository interface {
	AeraSKUs(ctx context.Context) (map[string]struct{}, error)
	WawiboxSKUs(ctx context.Context) (map[string]struct{}, error)
}

// ExportRepository defines operations for channel export tables
type ExportRepository interface {
	ReplaceAera(ctx context.Context, rows []*models.AeraExport, batchSize int) error
	ReplaceWawibox(ctx context.Context, rows []*models.WawiboxExport, batchSize int) error
	ListAera(ctx context.Context) ([]*models.AeraExport, error)
	ListWawibox(ctx context.Context) ([]*models.WawiboxExport, error)
}

// TaskStatusRepository defines operations for periodic task bookkeeping
type TaskStatusRepository interface {
	ByName(ctx context.Context, name string) (*models.TaskStatus, error)
	List(ctx context.Context) ([]*models.TaskStatus, error)
	SetSuccess(ctx context.Context, name string, at time.Time) error
	SetFailure(ctx context.Context, name string, at time.Time) error
}

// LogEntryRepository defines operations for stored log entries
type LogEntryRepository interface {
	Repository[models.LogEntry, models.LogEntryFilter]
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AdminRepository defines operations for admins
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, adminID uint, at time.Time) error
	UpdatePassword(ctx context.Context, adminID uint, passwordHash string) error
}
