package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportMetrics records how often fleet reports run and what they found.
type ReportMetrics struct {
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	predictions *prometheus.GaugeVec
	alerts      *prometheus.GaugeVec
}

// NewReportMetrics registers the report collectors on reg. A nil reg means
// the default registerer. Collectors that are already registered are reused.
func NewReportMetrics(reg prometheus.Registerer) (*ReportMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_report_runs_total",
		Help: "Number of fleet report evaluations",
	}, []string{"report", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleet_report_duration_seconds",
		Help:    "Time spent producing a fleet report",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	predictions := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleet_maintenance_predictions",
		Help: "Vehicles per maintenance status in the last prediction run",
	}, []string{"status"})
	alerts := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleet_compliance_alerts",
		Help: "Compliance alerts per status in the last scan",
	}, []string{"status"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if predictions, err = register(reg, predictions); err != nil {
		return nil, err
	}
	if alerts, err = register(reg, alerts); err != nil {
		return nil, err
	}

	return &ReportMetrics{runs: runs, duration: duration, predictions: predictions, alerts: alerts}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRun counts one report run and its latency.
func (m *ReportMetrics) ObserveRun(report string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(report, result).Inc()
	m.duration.WithLabelValues(report).Observe(time.Since(started).Seconds())
}

// SetPredictionCounts replaces the per-status gauge values.
func (m *ReportMetrics) SetPredictionCounts(counts map[string]int) {
	if m == nil {
		return
	}
	m.predictions.Reset()
	for status, n := range counts {
		m.predictions.WithLabelValues(status).Set(float64(n))
	}
}

// SetAlertCounts replaces the per-status gauge values.
func (m *ReportMetrics) SetAlertCounts(counts map[string]int) {
	if m == nil {
		return
	}
	m.alerts.Reset()
	for status, n := range counts {
		m.alerts.WithLabelValues(status).Set(float64(n))
	}
}
