package quotation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generationDuration tracks how long quotation generation takes per mode.
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quotation_generation_duration_seconds",
		Help:    "Time taken to generate quotations by mode",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"mode"}) // mode: catalog, inventory

	// generationErrors tracks failed generation runs.
	generationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_generation_errors_total",
		Help: "Total number of failed generation runs by mode",
	}, []string{"mode"})

	// quotationCount tracks the distribution of returned quotation counts.
	quotationCount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quotation_result_count",
		Help:    "Number of quotations returned per request by mode",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"mode"})

	// combinationCount tracks the raw combination space size before
	// placeholder exclusion and truncation.
	combinationCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quotation_combination_space_size",
		Help:    "Size of the capped combination space per generation run",
		Buckets: []float64{1, 2, 4, 9, 18, 36, 72},
	})

	// emptyResults counts requests that produced zero quotations.
	emptyResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_empty_results_total",
		Help: "Total number of requests yielding zero quotations by mode",
	}, []string{"mode"})

	// persistErrors counts failed batch saves.
	persistErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotation_batch_persist_errors_total",
		Help: "Total number of failed batch persistence attempts",
	})
)

// MetricsRecorder provides methods to record generator metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordGeneration records one generation run.
func (m *MetricsRecorder) RecordGeneration(mode string, durationSeconds float64, success bool) {
	generationDuration.WithLabelValues(mode).Observe(durationSeconds)
	if !success {
		generationErrors.WithLabelValues(mode).Inc()
	}
}

// RecordQuotationCount records how many quotations a request returned.
func (m *MetricsRecorder) RecordQuotationCount(mode string, count int) {
	quotationCount.WithLabelValues(mode).Observe(float64(count))
}

// RecordCombinationCount records the capped combination space size.
func (m *MetricsRecorder) RecordCombinationCount(count int) {
	combinationCount.Observe(float64(count))
}

// RecordEmptyResult records a request that produced zero quotations.
func (m *MetricsRecorder) RecordEmptyResult(mode string) {
	emptyResults.WithLabelValues(mode).Inc()
}

// RecordPersistError records a failed batch save.
func (m *MetricsRecorder) RecordPersistError() {
	persistErrors.Inc()
}
