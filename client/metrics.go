package client

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amazfit_client",
			Name:      "api_requests_total",
			Help:      "Requests issued against the vendor API.",
		},
		[]string{"endpoint", "status"},
	)

	eventItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amazfit_client",
			Name:      "event_items_total",
			Help:      "Raw items returned by the events endpoint.",
		},
		[]string{"event_type"},
	)
)

func observeRequest(endpoint string, statusCode int) {
	apiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}
