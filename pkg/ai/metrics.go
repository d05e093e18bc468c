package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dreamscribe_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"provider", "operation", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dreamscribe_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dreamscribe_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"provider", "operation"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dreamscribe_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(50, 50, 20),
		},
		[]string{"provider", "operation"},
	)
)

// observe записывает метрики завершенного запроса.
func observe(provider, operation string, started time.Time, usage UsageInfo, err error) {
	operation = operationLabel(operation)
	status := "success"
	if err != nil {
		status = "error"
	}
	aiRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	aiRequestDuration.WithLabelValues(provider, operation).Observe(time.Since(started).Seconds())
	if err == nil && usage.TotalTokens > 0 {
		aiPromptTokens.WithLabelValues(provider, operation).Observe(float64(usage.PromptTokens))
		aiCompletionTokens.WithLabelValues(provider, operation).Observe(float64(usage.CompletionTokens))
	}
}
