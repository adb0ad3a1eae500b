// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardwise_recommendations_served_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"mode"}, // filtered | fallback
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cardwise_rank_duration_seconds",
			Help:    "Duration of a ranking pass over the catalog",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardwise_catalog_refreshes_total",
			Help: "Catalog refresh attempts by result",
		},
		[]string{"result"},
	)

	CatalogCards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardwise_catalog_cards",
			Help: "Number of cards in the current catalog snapshot",
		},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardwise_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"}, // hit | miss | error
	)

	BotCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardwise_bot_commands_total",
			Help: "Telegram commands handled",
		},
		[]string{"command"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cardwise_http_request_duration_seconds",
			Help: "Duration of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
