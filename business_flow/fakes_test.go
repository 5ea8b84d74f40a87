package businessflow

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("store down")

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func uintPtr(v uint) *uint { return &v }

// fakeUnitOfWork runs fn directly. When failWith is set fn still runs and the
// error replaces its result, as a failed commit would.
type fakeUnitOfWork struct {
	calls    int
	failWith error
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return u.failWith
}

type fakeProductRepo struct {
	repository.ProductRepository

	candidates map[string][]models.PricingCandidate
	products   map[uint]*models.Product
	exportable []*models.Product
	applied    []models.ProductPricingUpdate
	batchSize  int
}

func (r *fakeProductRepo) PricingCandidates(_ context.Context, supplier string) ([]models.PricingCandidate, error) {
	return r.candidates[supplier], nil
}

func (r *fakeProductRepo) ApplyPricing(_ context.Context, updates []models.ProductPricingUpdate, batchSize int) (int64, error) {
	r.applied = append(r.applied, updates...)
	r.batchSize = batchSize
	return int64(len(updates)), nil
}

func (r *fakeProductRepo) ExportCandidates(context.Context) ([]*models.Product, error) {
	return r.exportable, nil
}

func (r *fakeProductRepo) ByID(_ context.Context, id uint) (*models.Product, error) {
	return r.products[id], nil
}

type fakeSettingsRepo struct {
	settings *models.PricingSettings
	err      error
}

func (r *fakeSettingsRepo) Current(context.Context) (*models.PricingSettings, error) {
	return r.settings, r.err
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, settings *models.PricingSettings) error {
	if r.err != nil {
		return r.err
	}
	settings.ID = 1
	settings.UpdatedAt = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	r.settings = settings
	return nil
}

type fakeHistoryRepo struct {
	repository.PriceHistoryRepository

	rows      []*models.ProductPriceHistory
	saved     []*models.ProductPriceHistory
	batchSize int
	cutoff    time.Time
	purged    int64
	lastQuery models.ProductPriceHistoryFilter
}

func (r *fakeHistoryRepo) SaveRun(_ context.Context, rows []*models.ProductPriceHistory, batchSize int) error {
	r.saved = append(r.saved, rows...)
	r.batchSize = batchSize
	return nil
}

func (r *fakeHistoryRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	return r.purged, nil
}

func (r *fakeHistoryRepo) ByFilter(_ context.Context, filter models.ProductPriceHistoryFilter, _ string, limit, offset int) ([]*models.ProductPriceHistory, error) {
	r.lastQuery = filter
	matched := r.matching(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

func (r *fakeHistoryRepo) Count(_ context.Context, filter models.ProductPriceHistoryFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *fakeHistoryRepo) matching(filter models.ProductPriceHistoryFilter) []*models.ProductPriceHistory {
	var out []*models.ProductPriceHistory
	for _, row := range r.rows {
		if filter.ProductID != nil && row.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, row)
	}
	return out
}

type fakeCostRepo struct {
	gls         map[uint]decimal.NullDecimal
	calculation map[uint]decimal.NullDecimal
	glsStock    map[string]decimal.Decimal
	masterStock map[uint]decimal.Decimal
}

func (r *fakeCostRepo) GLSPurchaseCosts(context.Context) (map[uint]decimal.NullDecimal, error) {
	return r.gls, nil
}

func (r *fakeCostRepo) CalculationPrices(context.Context) (map[uint]decimal.NullDecimal, error) {
	return r.calculation, nil
}

func (r *fakeCostRepo) GLSStockByArticleNo(context.Context) (map[string]decimal.Decimal, error) {
	return r.glsStock, nil
}

func (r *fakeCostRepo) MasterDataStockByProduct(context.Context) (map[uint]decimal.Decimal, error) {
	return r.masterStock, nil
}

type fakeSurchargeRepo struct {
	rows []models.HandlingSurcharge
}

func (r *fakeSurchargeRepo) All(context.Context) ([]models.HandlingSurcharge, error) {
	return r.rows, nil
}

type fakePromotionRepo struct {
	headers   []models.PromotionHeader
	prices    []models.PromotionPrice
	positions []models.PromotionPosition
}

func (r *fakePromotionRepo) Headers(context.Context) ([]models.PromotionHeader, error) {
	return r.headers, nil
}

func (r *fakePromotionRepo) Prices(context.Context) ([]models.PromotionPrice, error) {
	return r.prices, nil
}

func (r *fakePromotionRepo) Positions(context.Context) ([]models.PromotionPosition, error) {
	return r.positions, nil
}

type fakeCompetitorRepo struct {
	aera        []models.AeraCompetitorPrice
	wawibox     []models.WawiboxCompetitorPrice
	aeraSKUs    []string
	wawiboxSKUs []string
}

func (r *fakeCompetitorRepo) Aera(context.Context) ([]models.AeraCompetitorPrice, error) {
	return r.aera, nil
}

func (r *fakeCompetitorRepo) Wawibox(context.Context) ([]models.WawiboxCompetitorPrice, error) {
	return r.wawibox, nil
}

func (r *fakeCompetitorRepo) AeraSKUs(context.Context) (map[string]struct{}, error) {
	return skuSet(r.aeraSKUs), nil
}

func (r *fakeCompetitorRepo) WawiboxSKUs(context.Context) (map[string]struct{}, error) {
	return skuSet(r.wawiboxSKUs), nil
}

func skuSet(skus []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		set[sku] = struct{}{}
	}
	return set
}

type fakeExportRepo struct {
	aera    []*models.AeraExport
	wawibox []*models.WawiboxExport
	batches []int
}

func (r *fakeExportRepo) ReplaceAera(_ context.Context, rows []*models.AeraExport, batchSize int) error {
	r.aera = rows
	r.batches = append(r.batches, batchSize)
	return nil
}

func (r *fakeExportRepo) ReplaceWawibox(_ context.Context, rows []*models.WawiboxExport, batchSize int) error {
	r.wawibox = rows
	r.batches = append(r.batches, batchSize)
	return nil
}

func (r *fakeExportRepo) ListAera(context.Context) ([]*models.AeraExport, error) {
	return r.aera, nil
}

func (r *fakeExportRepo) ListWawibox(context.Context) ([]*models.WawiboxExport, error) {
	return r.wawibox, nil
}

type fakeTaskStatusRepo struct {
	mu       sync.Mutex
	statuses map[string]*models.TaskStatus
}

func newFakeTaskStatusRepo() *fakeTaskStatusRepo {
	return &fakeTaskStatusRepo{statuses: make(map[string]*models.TaskStatus)}
}

func (r *fakeTaskStatusRepo) ByName(_ context.Context, name string) (*models.TaskStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statuses[name], nil
}

func (r *fakeTaskStatusRepo) List(context.Context) ([]*models.TaskStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.TaskStatus, 0, len(r.statuses))
	for _, s := range r.statuses {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *models.TaskStatus) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *fakeTaskStatusRepo) SetSuccess(_ context.Context, name string, at time.Time) error {
	r.set(name, true, at)
	return nil
}

func (r *fakeTaskStatusRepo) SetFailure(_ context.Context, name string, at time.Time) error {
	r.set(name, false, at)
	return nil
}

func (r *fakeTaskStatusRepo) set(name string, ok bool, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[name] = &models.TaskStatus{Name: name, Status: ok, LastRun: at}
}

type fakeLogEntryRepo struct {
	repository.LogEntryRepository

	entries []*models.LogEntry
	cutoff  time.Time
}

func (r *fakeLogEntryRepo) ByFilter(_ context.Context, filter models.LogEntryFilter, _ string, limit, offset int) ([]*models.LogEntry, error) {
	matched := r.matching(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

func (r *fakeLogEntryRepo) Count(_ context.Context, filter models.LogEntryFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r *fakeLogEntryRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	var kept []*models.LogEntry
	var purged int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return purged, nil
}

func (r *fakeLogEntryRepo) matching(filter models.LogEntryFilter) []*models.LogEntry {
	var out []*models.LogEntry
	for _, e := range r.entries {
		if filter.Source != nil && e.Source != *filter.Source {
			continue
		}
		if filter.Level != nil && e.Level != *filter.Level {
			continue
		}
		out = append(out, e)
	}
	return out
}

type fakeAdminRepo struct {
	repository.AdminRepository

	admins    map[string]*models.Admin
	lastLogin map[uint]time.Time
	nextID    uint
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		admins:    make(map[string]*models.Admin),
		lastLogin: make(map[uint]time.Time),
	}
}

func (r *fakeAdminRepo) ByUsername(_ context.Context, username string) (*models.Admin, error) {
	return r.admins[username], nil
}

func (r *fakeAdminRepo) ByID(_ context.Context, id uint) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) Save(_ context.Context, admin *models.Admin) error {
	r.nextID++
	admin.ID = r.nextID
	admin.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.admins[admin.Username] = admin
	return nil
}

func (r *fakeAdminRepo) UpdateLastLogin(_ context.Context, adminID uint, at time.Time) error {
	r.lastLogin[adminID] = at
	return nil
}
