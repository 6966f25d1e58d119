package experiment

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports experiment results as Prometheus metrics.
type Metrics struct {
	Comparisons        *prometheus.CounterVec
	Insertions         *prometheus.CounterVec
	AverageComparisons *prometheus.GaugeVec
	LoadFactor         *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "probehash_comparisons_total",
			Help: "Total number of probe comparisons by strategy",
		}, []string{"strategy"}),
		Insertions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "probehash_insertions_total",
			Help: "Total number of insertions by strategy and result",
		}, []string{"strategy", "result"}),
		AverageComparisons: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "probehash_average_comparisons",
			Help: "Comparisons divided by table size of the last run",
		}, []string{"strategy", "table_size"}),
		LoadFactor: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "probehash_load_factor",
			Help: "Fraction of occupied slots after the last run",
		}, []string{"strategy", "table_size"}),
	}
	reg.MustRegister(m.Comparisons, m.Insertions, m.AverageComparisons, m.LoadFactor)
	return m
}

// Observe records one run.
func (m *Metrics) Observe(r Result) {
	s := r.Strategy.Name()
	ts := strconv.Itoa(r.TableSize)
	m.Comparisons.WithLabelValues(s).Add(float64(r.Comparisons))
	m.Insertions.WithLabelValues(s, "ok").Add(float64(r.Inserted))
	m.Insertions.WithLabelValues(s, "failed").Add(float64(r.Failed))
	m.AverageComparisons.WithLabelValues(s, ts).Set(r.AverageComparisons)
	m.LoadFactor.WithLabelValues(s, ts).Set(r.LoadFactor)
}
