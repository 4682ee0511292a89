package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negócio
	DatasetsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradeinsight_datasets_created_total",
		Help: "Total datasets stored",
	})

	DatasetRecordsIngested = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradeinsight_dataset_records",
		Help:    "Records per stored dataset",
		Buckets: []float64{1, 10, 50, 100, 250, 500},
	})

	AnalyticsRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradeinsight_analytics_runs_total",
		Help: "Analytics computations by kind and cache outcome",
	}, []string{"kind", "cache"})

	AIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradeinsight_ai_requests_total",
		Help: "LLM calls by operation and status",
	}, []string{"operation", "status"})

	AILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tradeinsight_ai_latency_seconds",
		Help:    "LLM call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// Métricas de infraestrutura
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradeinsight_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tradeinsight_http_latency_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradeinsight_database_latency_seconds",
		Help:    "Latency of repository queries",
		Buckets: prometheus.DefBuckets,
	})
)
