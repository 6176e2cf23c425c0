package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring ingestion health and performance
var (
	WebhookBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_batches_total",
			Help: "Total number of webhook batches received, by outcome",
		},
		[]string{"outcome"},
	)

	WebhookTransactionsSavedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_transactions_saved_total",
			Help: "Total number of transactions upserted into the order store",
		},
	)

	WebhookTransactionsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_transactions_skipped_total",
			Help: "Total number of transactions skipped during ingestion",
		},
	)

	WebhookBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webhook_batch_duration_seconds",
			Help:    "Duration of webhook batch processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	DashboardRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_requests_total",
			Help: "Total number of dashboard read requests",
		},
	)
)

// Batch outcomes recorded in WebhookBatchesTotal.
const (
	OutcomeAccepted     = "accepted"
	OutcomeUnauthorized = "unauthorized"
	OutcomeInvalid      = "invalid"
	OutcomeStorageError = "storage_error"
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(WebhookBatchesTotal)
	prometheus.MustRegister(WebhookTransactionsSavedTotal)
	prometheus.MustRegister(WebhookTransactionsSkippedTotal)
	prometheus.MustRegister(WebhookBatchDuration)
	prometheus.MustRegister(DashboardRequestsTotal)
}
