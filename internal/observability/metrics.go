package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

const metricsNamespace = "statline"

// PipelineMetrics records ingest cycle counters on a dedicated registry.
type PipelineMetrics struct {
	registry         *prometheus.Registry
	cycles           *prometheus.CounterVec
	cycleDuration    *prometheus.HistogramVec
	gamesSkipped     *prometheus.CounterVec
	playersDropped   *prometheus.CounterVec
	recordsWritten   *prometheus.CounterVec
	retentionDeleted prometheus.Counter
}

func NewPipelineMetrics() *PipelineMetrics {
	m := &PipelineMetrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cycles_total",
			Help:      "Ingest cycles by sport and outcome.",
		}, []string{"sport", "outcome"}),
		cycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one sport's ingest cycle.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"sport"}),
		gamesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "games_skipped_total",
			Help:      "Games whose detail fetch failed and were left out of a cycle.",
		}, []string{"sport"}),
		playersDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unknown_players_dropped_total",
			Help:      "Stat lines dropped because the player is not in the directory.",
		}, []string{"sport"}),
		recordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_written_total",
			Help:      "Raw stat records upserted.",
		}, []string{"sport"}),
		retentionDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retention_deleted_total",
			Help:      "Daily stat records removed by the retention sweep.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cycles,
		m.cycleDuration,
		m.gamesSkipped,
		m.playersDropped,
		m.recordsWritten,
		m.retentionDeleted,
	)
	return m
}

func (m *PipelineMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *PipelineMetrics) ObserveCycle(s sport.Sport, outcome string, duration time.Duration) {
	m.cycles.WithLabelValues(string(s), outcome).Inc()
	m.cycleDuration.WithLabelValues(string(s)).Observe(duration.Seconds())
}

func (m *PipelineMetrics) AddGamesSkipped(s sport.Sport, n int) {
	if n > 0 {
		m.gamesSkipped.WithLabelValues(string(s)).Add(float64(n))
	}
}

func (m *PipelineMetrics) AddPlayersDropped(s sport.Sport, n int) {
	if n > 0 {
		m.playersDropped.WithLabelValues(string(s)).Add(float64(n))
	}
}

func (m *PipelineMetrics) AddRecordsWritten(s sport.Sport, n int) {
	if n > 0 {
		m.recordsWritten.WithLabelValues(string(s)).Add(float64(n))
	}
}

func (m *PipelineMetrics) AddRetentionDeleted(n int64) {
	if n > 0 {
		m.retentionDeleted.Add(float64(n))
	}
}
