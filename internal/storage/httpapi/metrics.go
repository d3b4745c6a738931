package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики запросов к forum-backend; outcome: ok | api_error | network_error.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "forum_client",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Количество запросов к forum-backend по операциям и исходам.",
	}, []string{"op", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "forum_client",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Длительность запросов к forum-backend по операциям.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
)
