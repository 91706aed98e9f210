// Package metrics defines the Prometheus collectors for the relay and the
// /metrics exposition handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NotificationsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_notifications_received_total",
		Help: "Inbound feed notifications that passed the boundary checks",
	}, []string{"kind"})
	MessagesRelayed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_messages_relayed_total",
		Help: "Messages handed to the Slack webhook, by destination environment",
	}, []string{"environment"})
	RenderFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_render_fallbacks_total",
		Help: "Notifications whose renderer failed and a degraded fallback message was sent instead",
	})
	DeliveryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_delivery_failures_total",
		Help: "Outbound Slack deliveries that failed at the transport level",
	})
	MACRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_mac_rejections_total",
		Help: "Inbound requests rejected for a missing or mismatched HMAC",
	})
)

func init() {
	prometheus.MustRegister(
		NotificationsReceived,
		MessagesRelayed,
		RenderFallbacks,
		DeliveryFailures,
		MACRejections,
	)
}

// Handler returns the Prometheus exposition handler, mounted at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
