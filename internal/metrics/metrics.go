// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the gameplay engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isleforge_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "isleforge_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "isleforge_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		},
	)
)

// Gameplay metrics
var (
	TickPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "isleforge_generator_tick_passes_total",
			Help: "Generator tick engine passes executed.",
		},
	)

	CyclesProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isleforge_generator_cycles_total",
			Help: "Completed production cycles by generator.",
		},
		[]string{"generator"},
	)

	UnitsForfeited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "isleforge_storage_units_forfeited_total",
			Help: "Produced units dropped because storage was full.",
		},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isleforge_items_sold_total",
			Help: "Items sold by item id.",
		},
		[]string{"item"},
	)

	ItemsCrafted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isleforge_items_crafted_total",
			Help: "Craft executions by recipe id.",
		},
		[]string{"recipe"},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "isleforge_level_ups_total",
			Help: "Player level-ups across all sessions.",
		},
	)
)

// Persistence metrics
var (
	SavesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "isleforge_saves_total",
			Help: "Snapshot saves attempted.",
		},
	)

	SaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "isleforge_save_failures_total",
			Help: "Snapshot saves that failed. Gameplay continues regardless.",
		},
	)

	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "isleforge_live_sessions",
			Help: "Game sessions currently resident in the session cache.",
		},
	)
)

// Event metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "isleforge_events_published_total",
			Help: "Events delivered on the bus, labeled by type.",
		},
		[]string{"type"},
	)
)
