package businessflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/services"
	"github.com/jasado/jasado-middleware/config"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/pricing"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
)

const tracerName = "github.com/jasado/jasado-middleware/business_flow"

// PricingEngineFlow computes and persists the sales prices of all products
type PricingEngineFlow interface {
	// Run executes one pricing run and reports whether it succeeded.
	Run(ctx context.Context) bool
	// Execute executes one pricing run and returns its report.
	Execute(ctx context.Context) (*dto.PricingRunResult, error)
}

// PricingEngineFlowImpl loads the reference data once, prices every product
// in memory and writes all results in a single transaction.
type PricingEngineFlowImpl struct {
	productRepo    repository.ProductRepository
	settingsRepo   repository.PricingSettingsRepository
	historyRepo    repository.PriceHistoryRepository
	costRepo       repository.CostRepository
	surchargeRepo  repository.SurchargeRepository
	promotionRepo  repository.PromotionRepository
	competitorRepo repository.CompetitorPriceRepository
	uow            repository.UnitOfWork
	locker         services.RunLocker
	metrics        *RunMetrics
	cfg            config.PricingConfig
	logger         logrus.FieldLogger
	tracer         trace.Tracer
	now            func() time.Time
}

func NewPricingEngineFlow(
	productRepo repository.ProductRepository,
	settingsRepo repository.PricingSettingsRepository,
	historyRepo repository.PriceHistoryRepository,
	costRepo repository.CostRepository,
	surchargeRepo repository.SurchargeRepository,
	promotionRepo repository.PromotionRepository,
	competitorRepo repository.CompetitorPriceRepository,
	uow repository.UnitOfWork,
	locker services.RunLocker,
	metrics *RunMetrics,
	cfg config.PricingConfig,
	logger logrus.FieldLogger,
) PricingEngineFlow {
	return &PricingEngineFlowImpl{
		productRepo:    productRepo,
		settingsRepo:   settingsRepo,
		historyRepo:    historyRepo,
		costRepo:       costRepo,
		surchargeRepo:  surchargeRepo,
		promotionRepo:  promotionRepo,
		competitorRepo: competitorRepo,
		uow:            uow,
		locker:         locker,
		metrics:        metrics,
		cfg:            cfg,
		logger:         logger.WithField(services.LogSourceField, models.LogSourcePricing),
		tracer:         otel.Tracer(tracerName),
		now:            utils.UTCNow,
	}
}

// referenceData is everything a run reads, loaded once up front
type referenceData struct {
	settings   pricing.Settings
	aera       pricing.CompetitorPrices
	wawibox    pricing.CompetitorPrices
	surcharges pricing.SurchargeTable
	book       *pricing.PromotionBook
	glsCosts   map[uint]decimal.NullDecimal
	calcPrices map[uint]decimal.NullDecimal
	primary    []models.PricingCandidate
	secondary  []models.PricingCandidate
}

// channelPrices holds the rounded price of a product on both channels
type channelPrices struct {
	aera    decimal.Decimal
	wawibox decimal.Decimal
}

func (c channelPrices) any() bool {
	return !c.aera.IsZero() || !c.wawibox.IsZero()
}

// pricingPlan is the in-memory result of a run before it is persisted
type pricingPlan struct {
	prices map[uint]channelPrices
	gifts  map[uint]*models.GiftPricing
	order  []uint

	primaryPriced   int
	secondaryPriced int
	unresolved      int
}

func newPricingPlan() *pricingPlan {
	return &pricingPlan{
		prices: make(map[uint]channelPrices),
		gifts:  make(map[uint]*models.GiftPricing),
	}
}

func (p *pricingPlan) touch(productID uint) {
	_, priced := p.prices[productID]
	_, gifted := p.gifts[productID]
	if !priced && !gifted {
		p.order = append(p.order, productID)
	}
}

func (p *pricingPlan) setPrices(productID uint, prices channelPrices) {
	p.touch(productID)
	p.prices[productID] = prices
}

func (p *pricingPlan) setGift(productID uint, gift *models.GiftPricing) {
	p.touch(productID)
	p.gifts[productID] = gift
}

func (s *PricingEngineFlowImpl) Run(ctx context.Context) bool {
	_, err := s.Execute(ctx)
	return err == nil
}

func (s *PricingEngineFlowImpl) Execute(ctx context.Context) (result *dto.PricingRunResult, err error) {
	started := s.now()
	runID := uuid.New()
	logger := s.logger.WithField("run_id", runID.String())

	ctx, span := s.tracer.Start(ctx, "pricing.run", trace.WithAttributes(attribute.String("run_id", runID.String())))
	defer func() {
		s.metrics.observeRun(jobPricing, started, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.WithError(err).Error("Sales prices calculation encountered an error")
		}
		span.End()
	}()

	release, err := s.locker.Obtain(ctx, utils.PricingRunLockKey, s.cfg.RunLockTTL)
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			return nil, NewBusinessError("PRICING_RUN_IN_PROGRESS", "A pricing run is already in progress", err)
		}
		return nil, NewBusinessError("PRICING_LOCK_FAILED", "Failed to obtain pricing run lock", err)
	}
	defer release()

	ref, err := s.loadReferenceData(ctx)
	if err != nil {
		return nil, err
	}

	plan := s.buildPlan(ref, utils.DateOf(started), logger)
	updates, history := plan.materialize(runID, started)

	var updated, purged int64
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.productRepo.ApplyPricing(txCtx, updates, s.cfg.UpdateBatchSize)
		if txErr != nil {
			return txErr
		}
		if txErr = s.historyRepo.SaveRun(txCtx, history, s.cfg.HistoryBatchSize); txErr != nil {
			return txErr
		}
		purged, txErr = s.historyRepo.DeleteOlderThan(txCtx, utils.DaysAgo(started, s.cfg.HistoryRetentionDays))
		return txErr
	})
	if err != nil {
		return nil, NewBusinessError("PRICING_PERSIST_FAILED", "Failed to persist sales prices", err)
	}

	finished := s.now()
	result = &dto.PricingRunResult{
		RunID:              runID.String(),
		StartedAt:          started.Format(time.RFC3339),
		FinishedAt:         finished.Format(time.RFC3339),
		DurationMillis:     finished.Sub(started).Milliseconds(),
		Candidates:         len(ref.primary) + len(ref.secondary),
		PrimaryPriced:      plan.primaryPriced,
		SecondaryPriced:    plan.secondaryPriced,
		Unresolved:         plan.unresolved,
		GiftOffers:         len(plan.gifts),
		UpdatedProducts:    updated,
		HistoryRows:        len(history),
		PurgedHistoryRows:  purged,
		BlockedActionCodes: ref.book.BlockedCodes(),
	}

	s.metrics.addProducts("primary", plan.primaryPriced)
	s.metrics.addProducts("secondary", plan.secondaryPriced)
	s.metrics.addProducts("unresolved", plan.unresolved)
	s.metrics.addProducts("gift", len(plan.gifts))
	span.SetAttributes(
		attribute.Int("pricing.candidates", result.Candidates),
		attribute.Int64("pricing.updated_products", updated),
	)

	logger.WithFields(logrus.Fields{
		"candidates":       result.Candidates,
		"primary_priced":   result.PrimaryPriced,
		"secondary_priced": result.SecondaryPriced,
		"unresolved":       result.Unresolved,
		"gift_offers":      result.GiftOffers,
		"updated_products": updated,
		"history_rows":     result.HistoryRows,
		"purged_history":   purged,
		"duration_ms":      result.DurationMillis,
	}).Info("Sales prices calculated successfully")

	return result, nil
}

func (s *PricingEngineFlowImpl) loadReferenceData(ctx context.Context) (*referenceData, error) {
	ctx, span := s.tracer.Start(ctx, "pricing.load_reference_data")
	defer span.End()

	settings, err := s.settingsRepo.Current(ctx)
	if err != nil {
		return nil, NewBusinessError("PRICING_SETTINGS_LOOKUP_FAILED", "Failed to load pricing settings", err)
	}
	if settings == nil {
		return nil, NewBusinessError("PRICING_SETTINGS_NOT_FOUND", "Pricing settings are not configured", ErrPricingSettingsNotFound)
	}

	aeraRows, err := s.competitorRepo.Aera(ctx)
	if err != nil {
		return nil, NewBusinessError("COMPETITOR_PRICES_LOAD_FAILED", "Failed to load aggregator competitor prices", err)
	}
	wawiboxRows, err := s.competitorRepo.Wawibox(ctx)
	if err != nil {
		return nil, NewBusinessError("COMPETITOR_PRICES_LOAD_FAILED", "Failed to load marketplace competitor prices", err)
	}

	surcharges, err := s.surchargeRepo.All(ctx)
	if err != nil {
		return nil, NewBusinessError("SURCHARGES_LOAD_FAILED", "Failed to load handling surcharges", err)
	}

	headers, err := s.promotionRepo.Headers(ctx)
	if err != nil {
		return nil, NewBusinessError("PROMOTIONS_LOAD_FAILED", "Failed to load promotion headers", err)
	}
	promoPrices, err := s.promotionRepo.Prices(ctx)
	if err != nil {
		return nil, NewBusinessError("PROMOTIONS_LOAD_FAILED", "Failed to load promotion prices", err)
	}
	positions, err := s.promotionRepo.Positions(ctx)
	if err != nil {
		return nil, NewBusinessError("PROMOTIONS_LOAD_FAILED", "Failed to load promotion positions", err)
	}

	glsCosts, err := s.costRepo.GLSPurchaseCosts(ctx)
	if err != nil {
		return nil, NewBusinessError("COSTS_LOAD_FAILED", "Failed to load supplier purchase costs", err)
	}
	calcPrices, err := s.costRepo.CalculationPrices(ctx)
	if err != nil {
		return nil, NewBusinessError("COSTS_LOAD_FAILED", "Failed to load calculation prices", err)
	}

	primary, err := s.productRepo.PricingCandidates(ctx, models.SupplierGLS)
	if err != nil {
		return nil, NewBusinessError("PRODUCTS_LOAD_FAILED", "Failed to load primary products", err)
	}
	secondary, err := s.productRepo.PricingCandidates(ctx, models.SupplierNonGLS)
	if err != nil {
		return nil, NewBusinessError("PRODUCTS_LOAD_FAILED", "Failed to load secondary products", err)
	}

	return &referenceData{
		settings:   toEngineSettings(settings),
		aera:       pricing.AeraCompetitorPrices(aeraRows),
		wawibox:    pricing.WawiboxCompetitorPrices(wawiboxRows, s.cfg.OwnVendorID),
		surcharges: pricing.NewSurchargeTable(surcharges),
		book:       pricing.BookFromModels(headers, promoPrices, positions),
		glsCosts:   glsCosts,
		calcPrices: calcPrices,
		primary:    primary,
		secondary:  secondary,
	}, nil
}

func toEngineSettings(s *models.PricingSettings) pricing.Settings {
	return pricing.Settings{
		Rule:          pricing.CompetitorRule(s.CompetitorRule),
		MinimumMargin: s.NormalisedMinimumMargin(),
		Undercut:      s.UndercutValue,
	}
}

// buildPlan prices every candidate. Per-product data gaps skip the product
// and never fail the run.
func (s *PricingEngineFlowImpl) buildPlan(ref *referenceData, today time.Time, logger logrus.FieldLogger) *pricingPlan {
	calc := pricing.NewCalculator(ref.settings)
	plan := newPricingPlan()
	warned := make(map[string]struct{})

	for _, candidate := range ref.primary {
		cogs, ok := pricing.ResolveCost(candidate.ID, ref.glsCosts[candidate.ID], ref.book, today)
		if !ok {
			plan.unresolved++
			continue
		}

		surcharge := ref.surcharges.Lookup(candidate.ArticleGroupNo)
		if surcharge.IsAbsolute() {
			group := utils.StringValue(candidate.ArticleGroupNo)
			if _, done := warned[group]; !done {
				warned[group] = struct{}{}
				logger.WithFields(logrus.Fields{
					"article_group_no": group,
					"value":            surcharge.Value.String(),
				}).Warn("Absolute handling surcharge applied as a factor")
			}
		}

		prices := priceChannels(calc, candidate.ID, cogs, surcharge, ref)
		if prices.any() {
			plan.setPrices(candidate.ID, prices)
			plan.primaryPriced++
		}

		offer := pricing.EvaluateGift(candidate.ID, cogs, ref.book, today, logger)
		if offer == nil {
			continue
		}
		giftPrices := priceChannels(calc, candidate.ID, offer.GiftCOGS, surcharge, ref)
		plan.setGift(candidate.ID, &models.GiftPricing{
			AeraGiftSalesPrice:    decimal.NewNullDecimal(giftPrices.aera),
			WawiboxGiftSalesPrice: decimal.NewNullDecimal(giftPrices.wawibox),
			MinQty:                offer.MinQty,
			FreeQty:               offer.FreeQty,
			PaidQty:               offer.PaidQty,
			ValidFrom:             offer.ValidFrom,
			ValidUntil:            offer.ValidUntil,
			PromoCode:             offer.PromoCode,
			ActionType:            offer.ActionType,
		})
	}

	for _, candidate := range ref.secondary {
		cost := ref.calcPrices[candidate.ID]
		if !cost.Valid || !cost.Decimal.IsPositive() {
			plan.unresolved++
			continue
		}
		prices := priceChannels(calc, candidate.ID, cost.Decimal, pricing.NoSurcharge, ref)
		if prices.any() {
			plan.setPrices(candidate.ID, prices)
			plan.secondaryPriced++
		}
	}

	return plan
}

func priceChannels(calc *pricing.Calculator, productID uint, cogs decimal.Decimal, surcharge pricing.Surcharge, ref *referenceData) channelPrices {
	return channelPrices{
		aera:    pricing.RoundMoney(calc.SalesPrice(cogs, surcharge, ref.aera.For(productID))),
		wawibox: pricing.RoundMoney(calc.SalesPrice(cogs, surcharge, ref.wawibox.For(productID))),
	}
}

// materialize turns the plan into product updates for every touched product
// and one history row per priced product.
func (p *pricingPlan) materialize(runID uuid.UUID, at time.Time) ([]models.ProductPricingUpdate, []*models.ProductPriceHistory) {
	updates := make([]models.ProductPricingUpdate, 0, len(p.order))
	history := make([]*models.ProductPriceHistory, 0, len(p.prices))

	for _, productID := range p.order {
		update := models.ProductPricingUpdate{
			ProductID: productID,
			Gift:      p.gifts[productID],
		}
		prices, priced := p.prices[productID]
		if priced {
			update.HasPrices = true
			update.AeraSalesPrice = decimal.NewNullDecimal(prices.aera)
			update.WawiboxSalesPrice = decimal.NewNullDecimal(prices.wawibox)
			history = append(history, historyRow(runID, at, update))
		}
		updates = append(updates, update)
	}
	return updates, history
}

func historyRow(runID uuid.UUID, at time.Time, u models.ProductPricingUpdate) *models.ProductPriceHistory {
	row := &models.ProductPriceHistory{
		RunID:             runID,
		ProductID:         u.ProductID,
		AeraSalesPrice:    u.AeraSalesPrice,
		WawiboxSalesPrice: u.WawiboxSalesPrice,
		CalculatedAt:      at,
	}
	if g := u.Gift; g != nil {
		row.AeraGiftSalesPrice = g.AeraGiftSalesPrice
		row.WawiboxGiftSalesPrice = g.WawiboxGiftSalesPrice
		row.GiftMinQty = utils.ToPtr(g.MinQty)
		row.GiftFreeQty = utils.ToPtr(g.FreeQty)
		row.GiftPaidQty = utils.ToPtr(g.PaidQty)
		row.GiftValidFrom = toDate(g.ValidFrom)
		row.GiftValidUntil = toDate(g.ValidUntil)
	}
	return row
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(utils.DateOf(*t))
	return &d
}
