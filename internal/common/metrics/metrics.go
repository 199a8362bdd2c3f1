package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_requests_total",
			Help: "Total number of action requests dispatched",
		},
		[]string{"action"},
	)

	ActionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_failures_total",
			Help: "Total number of failed action requests",
		},
		[]string{"action", "kind"},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "action_duration_seconds",
			Help: "Duration of action handling in seconds",
		},
		[]string{"action"},
	)
)
