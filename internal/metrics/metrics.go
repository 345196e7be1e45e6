package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ShelfLifeLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shelf_life_lookups_total",
		Help: "Shelf-life resolutions by outcome",
	}, []string{"outcome"})

	ReceiptsIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipts_ingested_total",
		Help: "Receipts persisted with their items",
	})
	IngestionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingestion_failures_total",
		Help: "Receipt uploads rejected, by failing stage",
	}, []string{"stage"})

	NotificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Expiry reminders delivered and marked notified",
	})
	NotificationsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Expiry reminders the push transport did not accept",
	})
	NotificationsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_skipped_total",
		Help: "Expiry reminders skipped because the owner has no push token",
	})
	SweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweep_duration_seconds",
		Help:    "Time spent in one notification sweep",
		Buckets: prometheus.DefBuckets,
	})
)

func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		ShelfLifeLookups,
		ReceiptsIngested,
		IngestionFailures,
		NotificationsSent,
		NotificationsFailed,
		NotificationsSkipped,
		SweepDuration,
	)
}

func ObserveSweep(start time.Time) {
	SweepDuration.Observe(time.Since(start).Seconds())
}
