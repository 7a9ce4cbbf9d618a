// Package metrics holds the process-wide Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PapersIngested counts papers newly inserted by ingestion runs.
	PapersIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_papers_ingested_total",
			Help: "Total number of new papers added to the database.",
		},
	)

	// NotificationsEnqueued counts notification records created.
	NotificationsEnqueued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_notifications_enqueued_total",
			Help: "Total number of notification records created.",
		},
	)

	// NotificationsSent counts successful webhook deliveries.
	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_notifications_sent_total",
			Help: "Total number of notifications delivered.",
		},
	)

	// DeliveryFailures counts webhook deliveries that errored.
	DeliveryFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_delivery_failures_total",
			Help: "Total number of failed webhook deliveries.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PapersIngested,
		NotificationsEnqueued,
		NotificationsSent,
		DeliveryFailures,
	)
}
