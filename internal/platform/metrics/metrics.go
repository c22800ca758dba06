package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	CartItemsAdded      prometheus.Counter
	CartItemsRemoved    prometheus.Counter
	ReservationsCreated prometheus.Counter
	ReservationsExpired prometheus.Counter
	OrdersCreated       prometheus.Counter
	OrderAmount         prometheus.Histogram
	RequestLatency      *prometheus.HistogramVec
	BindingDiagnostics  prometheus.Counter
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics against the given registerer. Tests use a
// fresh registry per instance.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CartItemsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxoffice_cart_items_added_total",
			Help: "Total number of items added to carts",
		}),
		CartItemsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxoffice_cart_items_removed_total",
			Help: "Total number of items removed from carts",
		}),
		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxoffice_reservations_created_total",
			Help: "Total number of seat reservations created",
		}),
		ReservationsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxoffice_reservations_expired_total",
			Help: "Total number of seat reservations that expired before checkout",
		}),
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxoffice_orders_created_total",
			Help: "Total number of orders created",
		}),
		OrderAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "boxoffice_order_amount",
			Help:    "Distribution of order amounts in venue currency units",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "boxoffice_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		BindingDiagnostics: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxoffice_seatmap_binding_diagnostics_total",
			Help: "Total number of recoverable diagnostics emitted while binding the seat map",
		}),
	}
}

// ObserveRequest records a single HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}
