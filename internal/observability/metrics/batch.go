package metrics

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
)

// BatchMetrics counts batch run outcomes in a private registry. A batch
// process has no scrape endpoint, so the registry is exported at end of run
// as a textfile for the node_exporter textfile collector.
type BatchMetrics struct {
	registry *prometheus.Registry
	service  string

	unitsTotal   *prometheus.CounterVec
	unitDuration *prometheus.HistogramVec
	recordsTotal prometheus.Counter
	decodeErrors prometheus.Counter
}

func NewBatchMetrics(service string) *BatchMetrics {
	registry := prometheus.NewRegistry()

	unitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "olmocr",
			Subsystem: "batch",
			Name:      "units_total",
			Help:      "Processed source directories by outcome.",
		},
		[]string{"service", "outcome"},
	)
	unitDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "olmocr",
			Subsystem: "batch",
			Name:      "unit_duration_seconds",
			Help:      "Per-directory processing duration in seconds by outcome.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"service", "outcome"},
	)
	recordsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "olmocr",
			Subsystem:   "batch",
			Name:        "records_converted_total",
			Help:        "OCR records converted to Markdown artifacts.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	decodeErrors := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "olmocr",
			Subsystem:   "batch",
			Name:        "record_decode_errors_total",
			Help:        "Result lines skipped because they failed to parse as JSON.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(unitsTotal, unitDuration, recordsTotal, decodeErrors)

	return &BatchMetrics{
		registry:     registry,
		service:      service,
		unitsTotal:   unitsTotal,
		unitDuration: unitDuration,
		recordsTotal: recordsTotal,
		decodeErrors: decodeErrors,
	}
}

func (m *BatchMetrics) ObserveUnit(outcome domain.UnitOutcome, seconds float64) {
	m.unitsTotal.WithLabelValues(m.service, string(outcome)).Inc()
	m.unitDuration.WithLabelValues(m.service, string(outcome)).Observe(seconds)
}

func (m *BatchMetrics) AddRecords(n int) {
	m.recordsTotal.Add(float64(n))
}

func (m *BatchMetrics) AddDecodeErrors(n int) {
	m.decodeErrors.Add(float64(n))
}

// Export dumps the registry in Prometheus text exposition format.
func (m *BatchMetrics) Export(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// WriteTextfile writes the metrics to path via a temp file and rename, so a
// textfile collector never reads a partial file.
func (m *BatchMetrics) WriteTextfile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := m.Export(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
