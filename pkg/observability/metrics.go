package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records pipeline and cache events as Prometheus metrics on its
// own registry.
type Metrics struct {
	ParsesTotal        *prometheus.CounterVec
	ParseDuration      *prometheus.HistogramVec
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	Iterations         *prometheus.HistogramVec
	Nodes              *prometheus.HistogramVec
	Temperature        *prometheus.GaugeVec
	Energy             *prometheus.GaugeVec
	CacheOpsTotal      *prometheus.CounterVec
	CacheBytesWritten  *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
)

// NewMetrics creates a Metrics with every collector registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}
	f := promauto.With(reg)

	m.ParsesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "packforce_parses_total",
		Help: "Chart files parsed, by format and status",
	}, []string{"format", "status"})

	m.ParseDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packforce_parse_duration_seconds",
		Help:    "Chart parse duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"format"})

	m.SimulationsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "packforce_simulations_total",
		Help: "Simulations run, by layout kind and outcome (stable, stopped, error)",
	}, []string{"kind", "outcome"})

	m.SimulationDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packforce_simulation_duration_seconds",
		Help:    "Wall time of a full simulation in seconds",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}, []string{"kind"})

	m.Iterations = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packforce_simulation_iterations",
		Help:    "Iterations needed to finish a simulation",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500},
	}, []string{"kind"})

	m.Nodes = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packforce_simulation_nodes",
		Help:    "Nodes per simulation",
		Buckets: []float64{1, 10, 50, 100, 500, 1000},
	}, []string{"kind"})

	m.Temperature = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "packforce_temperature",
		Help: "Cooling temperature at the last reported iteration",
	}, []string{"kind"})

	m.Energy = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "packforce_energy",
		Help: "Total node movement at the last reported iteration",
	}, []string{"kind"})

	m.CacheOpsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "packforce_cache_operations_total",
		Help: "Cache operations by key type and result (hit, miss, set)",
	}, []string{"key_type", "result"})

	m.CacheBytesWritten = f.NewCounterVec(prometheus.CounterOpts{
		Name: "packforce_cache_bytes_written_total",
		Help: "Bytes written to the cache",
	}, []string{"key_type"})

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the current metrics in the node-exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) OnParseStart(context.Context, string, string) {}

func (m *Metrics) OnParseComplete(_ context.Context, format, _ string, _ int, d time.Duration, err error) {
	m.ParsesTotal.WithLabelValues(format, status(err)).Inc()
	m.ParseDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnSimulationStart(_ context.Context, kind string, nodes, _ int) {
	m.Nodes.WithLabelValues(kind).Observe(float64(nodes))
}

func (m *Metrics) OnIteration(_ context.Context, kind string, _ int, temperature, energy float64) {
	m.Temperature.WithLabelValues(kind).Set(temperature)
	m.Energy.WithLabelValues(kind).Set(energy)
}

func (m *Metrics) OnSimulationComplete(_ context.Context, kind string, iterations int, stable bool, d time.Duration, err error) {
	outcome := "stopped"
	switch {
	case err != nil:
		outcome = "error"
	case stable:
		outcome = "stable"
	}
	m.SimulationsTotal.WithLabelValues(kind, outcome).Inc()
	if err != nil {
		return
	}
	m.SimulationDuration.WithLabelValues(kind).Observe(d.Seconds())
	m.Iterations.WithLabelValues(kind).Observe(float64(iterations))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheBytesWritten.WithLabelValues(keyType).Add(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
