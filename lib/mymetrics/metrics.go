package mymetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CheckoutAttempts counts checkout submissions by outcome
	CheckoutAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout submissions",
		},
		[]string{"outcome"},
	)

	// OrdersPlaced counts successfully placed orders
	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)
)

const (
	OutcomeSuccess   = "success"
	OutcomeForbidden = "forbidden"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeErrored   = "errored"
	OutcomeNoBasket  = "basket_not_found"
	OutcomeNoAccess  = "basket_access_denied"
)

func Handler() http.Handler {
	return promhttp.Handler()
}
