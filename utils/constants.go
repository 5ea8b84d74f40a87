package utils

// Pricing constants
const (
	// PriceHistoryRetentionDays is how long price history rows are kept
	PriceHistoryRetentionDays = 90

	// ProductUpdateBatchSize is the chunk size of product price updates
	ProductUpdateBatchSize = 500

	// HistoryInsertBatchSize is the chunk size of price history inserts
	HistoryInsertBatchSize = 5000

	// ExportInsertBatchSize is the chunk size of export row inserts
	ExportInsertBatchSize = 5000
)

// Lock keys
const (
	PricingRunLockKey = "lock:pricing:run"
	ExportRunLockKey  = "lock:exports:build"
)
