package businessflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/services"
	"github.com/jasado/jasado-middleware/config"
	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Delivery times in days announced on the aggregator
const (
	deliveryDaysInStock    = 3
	deliveryDaysOutOfStock = 14
)

const offerTypeStandard = 1

// ExportFlow builds the per-channel export tables from the priced products
type ExportFlow interface {
	BuildProductExports(ctx context.Context) bool
	Build(ctx context.Context) (*dto.ExportBuildResult, error)
	ExportWorkbook(ctx context.Context, channel string) (string, []byte, error)
}

// ExportFlowImpl implements ExportFlow
type ExportFlowImpl struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	listingRepo repository.ChannelListingRepository
	exportRepo  repository.ExportRepository
	uow         repository.UnitOfWork
	locker      services.RunLocker
	metrics     *RunMetrics
	cfg         config.PricingConfig
	logger      logrus.FieldLogger
	tracer      trace.Tracer
	now         func() time.Time
}

func NewExportFlow(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	listingRepo repository.ChannelListingRepository,
	exportRepo repository.ExportRepository,
	uow repository.UnitOfWork,
	locker services.RunLocker,
	metrics *RunMetrics,
	cfg config.PricingConfig,
	logger logrus.FieldLogger,
) ExportFlow {
	return &ExportFlowImpl{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		listingRepo: listingRepo,
		exportRepo:  exportRepo,
		uow:         uow,
		locker:      locker,
		metrics:     metrics,
		cfg:         cfg,
		logger:      logger.WithField(services.LogSourceField, models.LogSourceExports),
		tracer:      otel.Tracer(tracerName),
		now:         utils.UTCNow,
	}
}

func (f *ExportFlowImpl) BuildProductExports(ctx context.Context) bool {
	_, err := f.Build(ctx)
	return err == nil
}

func (f *ExportFlowImpl) Build(ctx context.Context) (result *dto.ExportBuildResult, err error) {
	started := f.now()

	ctx, span := f.tracer.Start(ctx, "exports.build")
	defer func() {
		f.metrics.observeRun(jobExports, started, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			f.logger.WithError(err).Error("Product exports preparation encountered an error")
		}
		span.End()
	}()

	release, err := f.locker.Obtain(ctx, utils.ExportRunLockKey, f.cfg.RunLockTTL)
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			return nil, NewBusinessError("EXPORT_RUN_IN_PROGRESS", "An export build is already in progress", err)
		}
		return nil, NewBusinessError("EXPORT_LOCK_FAILED", "Failed to obtain export lock", err)
	}
	defer release()

	products, err := f.productRepo.ExportCandidates(ctx)
	if err != nil {
		return nil, NewBusinessError("EXPORT_PRODUCTS_LOAD_FAILED", "Failed to load exportable products", err)
	}
	aeraSKUs, err := f.listingRepo.AeraSKUs(ctx)
	if err != nil {
		return nil, NewBusinessError("EXPORT_LISTINGS_LOAD_FAILED", "Failed to load aggregator listing", err)
	}
	wawiboxSKUs, err := f.listingRepo.WawiboxSKUs(ctx)
	if err != nil {
		return nil, NewBusinessError("EXPORT_LISTINGS_LOAD_FAILED", "Failed to load marketplace listing", err)
	}
	glsStock, err := f.stockRepo.GLSStockByArticleNo(ctx)
	if err != nil {
		return nil, NewBusinessError("EXPORT_STOCK_LOAD_FAILED", "Failed to load supplier stock levels", err)
	}
	masterStock, err := f.stockRepo.MasterDataStockByProduct(ctx)
	if err != nil {
		return nil, NewBusinessError("EXPORT_STOCK_LOAD_FAILED", "Failed to load master data stock", err)
	}

	var aera []*models.AeraExport
	var wawibox []*models.WawiboxExport
	for _, p := range products {
		if p.SKU == nil || !p.HasAnySalesPrice() {
			continue
		}
		if _, listed := aeraSKUs[*p.SKU]; listed && p.AeraSalesPrice.Valid {
			aera = append(aera, buildAeraExport(p, stockOf(p, glsStock, masterStock)))
		}
		if _, listed := wawiboxSKUs[*p.SKU]; listed && p.WawiboxSalesPrice.Valid {
			wawibox = append(wawibox, buildWawiboxExport(p))
		}
	}

	err = f.uow.Do(ctx, func(txCtx context.Context) error {
		if err := f.exportRepo.ReplaceAera(txCtx, aera, f.cfg.ExportBatchSize); err != nil {
			return err
		}
		return f.exportRepo.ReplaceWawibox(txCtx, wawibox, f.cfg.ExportBatchSize)
	})
	if err != nil {
		return nil, NewBusinessError("EXPORT_PERSIST_FAILED", "Failed to replace export tables", err)
	}

	finished := f.now()
	result = &dto.ExportBuildResult{
		Candidates:     len(products),
		AeraRows:       len(aera),
		WawiboxRows:    len(wawibox),
		DurationMillis: finished.Sub(started).Milliseconds(),
		FinishedAt:     finished.Format(time.RFC3339),
	}

	f.metrics.setExportRows(models.ChannelAera, len(aera))
	f.metrics.setExportRows(models.ChannelWawibox, len(wawibox))
	span.SetAttributes(
		attribute.Int("exports.aera_rows", len(aera)),
		attribute.Int("exports.wawibox_rows", len(wawibox)),
	)

	f.logger.WithFields(logrus.Fields{
		"candidates":   result.Candidates,
		"aera_rows":    result.AeraRows,
		"wawibox_rows": result.WawiboxRows,
		"duration_ms":  result.DurationMillis,
	}).Info("Product exports prepared successfully")

	return result, nil
}

// stockOf returns the stock of a product. GLS stock is keyed by the supplier
// article number, everything else comes from the master data.
func stockOf(p *models.Product, glsStock map[string]decimal.Decimal, masterStock map[uint]decimal.Decimal) decimal.Decimal {
	if p.IsGLS() {
		return glsStock[utils.StringValue(p.SupplierArticleNo)]
	}
	return masterStock[p.ID]
}

func buildAeraExport(p *models.Product, stock decimal.Decimal) *models.AeraExport {
	availability, delivery := models.AvailabilityOutOfStock, deliveryDaysOutOfStock
	if stock.IsPositive() {
		availability, delivery = models.AvailabilityInStock, deliveryDaysInStock
	}

	row := &models.AeraExport{
		SKU:                      p.SKU,
		ProductName:              p.Name,
		Manufacturer:             p.Manufacturer,
		MPN:                      p.ManufacturerArticleNo,
		OfferTypeID:              offerTypeStandard,
		AvailabilityTypeID:       availability,
		DifferentDeliveryTime:    delivery,
		ShippedTemperatureStable: p.StoreRefrigerated,
		SalesPrice:               p.AeraSalesPrice,
	}
	// the supplier feed carries no usable GTIN for GLS articles
	if !p.IsGLS() {
		row.GTIN = p.GTIN
	}
	if p.HasGiftPrice {
		row.GiftSalesPrice = p.AeraGiftSalesPrice
		row.GiftMinQty = p.GiftMinQty
		row.GiftValidUntil = p.GiftValidUntil
	}
	return row
}

func buildWawiboxExport(p *models.Product) *models.WawiboxExport {
	return &models.WawiboxExport{
		InternalNumber:        *p.SKU,
		Name:                  p.Name,
		ManufacturerArticleNo: p.ManufacturerArticleNo,
		SalesPrice:            p.WawiboxSalesPrice,
	}
}

// ExportWorkbook renders the current export table of a channel as xlsx
func (f *ExportFlowImpl) ExportWorkbook(ctx context.Context, channel string) (string, []byte, error) {
	var header []string
	var records [][]any

	switch channel {
	case models.ChannelAera:
		rows, err := f.exportRepo.ListAera(ctx)
		if err != nil {
			return "", nil, NewBusinessError("EXPORT_LIST_FAILED", "Failed to list aggregator export rows", err)
		}
		header = []string{"sku", "product_name", "manufacturer", "mpn", "gtin", "offer_type_id", "availability_type_id", "different_delivery_time", "shipped_temperature_stable", "sales_price", "gift_sales_price", "gift_min_qty", "gift_valid_until"}
		for _, r := range rows {
			records = append(records, []any{
				utils.StringValue(r.SKU),
				utils.StringValue(r.ProductName),
				utils.StringValue(r.Manufacturer),
				utils.StringValue(r.MPN),
				utils.StringValue(r.GTIN),
				r.OfferTypeID,
				r.AvailabilityTypeID,
				r.DifferentDeliveryTime,
				r.ShippedTemperatureStable,
				cellMoney(r.SalesPrice),
				cellMoney(r.GiftSalesPrice),
				cellInt(r.GiftMinQty),
				utils.StringValue(dateString(r.GiftValidUntil)),
			})
		}
	case models.ChannelWawibox:
		rows, err := f.exportRepo.ListWawibox(ctx)
		if err != nil {
			return "", nil, NewBusinessError("EXPORT_LIST_FAILED", "Failed to list marketplace export rows", err)
		}
		header = []string{"internal_number", "name", "manufacturer_article_no", "sales_price"}
		for _, r := range rows {
			records = append(records, []any{
				r.InternalNumber,
				utils.StringValue(r.Name),
				utils.StringValue(r.ManufacturerArticleNo),
				cellMoney(r.SalesPrice),
			})
		}
	default:
		return "", nil, NewBusinessErrorf("INVALID_CHANNEL", "Unknown export channel %q", ErrInvalidChannel, channel)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	if err := xl.SetSheetName(sheet, channel); err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to name worksheet", err)
	}
	if err := xl.SetSheetRow(channel, "A1", &header); err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write header row", err)
	}
	for i, record := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(channel, cell, &record); err != nil {
			return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write export row", err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	filename := fmt.Sprintf("%s_export_%s.xlsx", channel, f.now().Format("20060102"))
	return filename, buf.Bytes(), nil
}

func cellMoney(d decimal.NullDecimal) any {
	if !d.Valid {
		return ""
	}
	v, _ := d.Decimal.Round(2).Float64()
	return v
}

func cellInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
