package businessflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunMetrics are the Prometheus collectors of the pricing and export runs
type RunMetrics struct {
	runsTotal     *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	productsTotal *prometheus.CounterVec
	exportRows    *prometheus.GaugeVec
	lastSuccess   *prometheus.GaugeVec
}

// NewRunMetrics registers the run collectors on reg
func NewRunMetrics(reg prometheus.Registerer) *RunMetrics {
	factory := promauto.With(reg)
	return &RunMetrics{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jasado_runs_total",
				Help: "Pricing and export runs partitioned by job and outcome",
			},
			[]string{"job", "outcome"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jasado_run_duration_seconds",
				Help:    "Duration of pricing and export runs in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		),
		productsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jasado_pricing_products_total",
				Help: "Products handled by pricing runs partitioned by result",
			},
			[]string{"result"},
		),
		exportRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "jasado_export_rows",
				Help: "Rows in the channel export tables after the last build",
			},
			[]string{"channel"},
		),
		lastSuccess: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "jasado_run_last_success_timestamp_seconds",
				Help: "Unix time of the last successful run per job",
			},
			[]string{"job"},
		),
	}
}

// Job labels
const (
	jobPricing = "pricing"
	jobExports = "exports"
)

func (m *RunMetrics) observeRun(job string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.runsTotal.WithLabelValues(job, outcome).Inc()
	m.runDuration.WithLabelValues(job).Observe(time.Since(started).Seconds())
	if err == nil {
		m.lastSuccess.WithLabelValues(job).SetToCurrentTime()
	}
}

func (m *RunMetrics) addProducts(result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.productsTotal.WithLabelValues(result).Add(float64(n))
}

func (m *RunMetrics) setExportRows(channel string, n int) {
	if m == nil {
		return
	}
	m.exportRows.WithLabelValues(channel).Set(float64(n))
}
