package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evently_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	TicketPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evently_ticket_purchases_total",
			Help: "Ticket purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	TicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evently_tickets_issued_total",
			Help: "Tickets minted by successful purchases",
		},
	)

	PlaceReservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evently_place_reservations_total",
			Help: "Place reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	PaymentReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evently_payment_reconciliations_total",
			Help: "Payment reconciliations by provider and resulting status",
		},
		[]string{"provider", "status"},
	)

	GatewayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evently_gateway_calls_total",
			Help: "Payment gateway calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	CatalogChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evently_catalog_changes_total",
			Help: "Catalog change notifications received",
		},
		[]string{"kind"},
	)
)

// Outcome labels shared by the inventory counters.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
