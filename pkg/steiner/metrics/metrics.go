// Package metrics exposes genetic search progress as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mihai-snyk/rsmt/pkg/steiner/algorithms"
)

const (
	namespace = "rsmt"
	subsystem = "ga"
)

// Metrics records generations, evaluations and costs of genetic runs.
// It implements algorithms.Recorder.
type Metrics struct {
	Generations prometheus.Counter
	Evaluations prometheus.Counter
	BestCost    prometheus.Gauge
	MeanCost    prometheus.Gauge
	Diversity   prometheus.Gauge
	RunDuration prometheus.Histogram
}

var _ algorithms.Recorder = &Metrics{}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generations_total",
			Help:      "Number of evaluated generations, including initial populations.",
		}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evaluations_total",
			Help:      "Number of fitness evaluations.",
		}),
		BestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "best_cost",
			Help:      "Best MST cost in the most recent generation.",
		}),
		MeanCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mean_cost",
			Help:      "Mean MST cost of the most recent generation.",
		}),
		Diversity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unique_chromosomes",
			Help:      "Distinct chromosomes in the most recent generation.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete genetic runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.Generations, m.Evaluations, m.BestCost, m.MeanCost, m.Diversity, m.RunDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) ObserveGeneration(stats algorithms.GenerationStats) {
	m.Generations.Inc()
	m.BestCost.Set(float64(stats.BestCost))
	m.MeanCost.Set(stats.MeanCost)
	m.Diversity.Set(float64(stats.Unique))
}

func (m *Metrics) ObserveEvaluations(n int) {
	m.Evaluations.Add(float64(n))
}

func (m *Metrics) ObserveRun(d time.Duration) {
	m.RunDuration.Observe(d.Seconds())
}

// WriteText dumps everything g gathers in the Prometheus text format.
func WriteText(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
