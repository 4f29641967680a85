package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// SampleMetrics exposes the samples of one run as Prometheus series.
//
// The registry is private to the run so the exported textfile carries only
// benchmark series, not the default process collectors.
type SampleMetrics struct {
	registry *prometheus.Registry

	Seconds *prometheus.GaugeVec
	Memory  *prometheus.GaugeVec
	Samples *prometheus.CounterVec
}

// NewSampleMetrics creates and registers the benchmark series.
func NewSampleMetrics() *SampleMetrics {
	m := &SampleMetrics{registry: prometheus.NewRegistry()}

	m.Seconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crossbench_operation_seconds",
			Help: "Wall-clock duration of the last sample of an operation",
		},
		[]string{"operation", "language"},
	)

	m.Memory = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crossbench_operation_memory_kilobytes",
			Help: "Peak heap growth of the last sample of an operation in KiB",
		},
		[]string{"operation", "language"},
	)

	m.Samples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossbench_samples_total",
			Help: "Total number of samples taken",
		},
		[]string{"language"},
	)

	m.registry.MustRegister(m.Seconds, m.Memory, m.Samples)
	return m
}

// Observe records one sample.
func (m *SampleMetrics) Observe(operation, language string, seconds, memoryKB float64) {
	m.Seconds.WithLabelValues(operation, language).Set(seconds)
	m.Memory.WithLabelValues(operation, language).Set(memoryKB)
	m.Samples.WithLabelValues(language).Inc()
}

// Gatherer returns the registry backing these metrics.
func (m *SampleMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, suitable
// for the node_exporter textfile collector.
func (m *SampleMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
