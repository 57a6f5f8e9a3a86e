package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OverdueTransitions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wtms",
		Subsystem: "works",
		Name:      "overdue_transitions_total",
		Help:      "Total works moved from pending to overdue by read-time refresh.",
	})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wtms",
		Subsystem: "submissions",
		Name:      "total",
		Help:      "Submissions written, labelled by action (created, edited).",
	}, []string{"action"})

	SubmissionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wtms",
		Subsystem: "submissions",
		Name:      "conflicts_total",
		Help:      "Duplicate first-submission attempts rejected.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wtms",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, labelled by method and status code.",
	}, []string{"method", "status"})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wtms",
		Subsystem: "ws",
		Name:      "clients",
		Help:      "Currently connected websocket clients.",
	})
)
