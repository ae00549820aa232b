package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "littlelemon_store_operation_seconds",
		Help:    "Time spent in a menu or key-value store operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store", "operation"})

	StoreOperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "littlelemon_store_operation_errors_total",
		Help: "Total number of failed store operations.",
	}, []string{"store", "operation"})

	StoreLockRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "littlelemon_store_lock_retries_total",
		Help: "Total number of retries caused by a locked or busy database.",
	}, []string{"store"})

	MenuRowsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "littlelemon_menu_rows_returned",
		Help:    "Number of menu rows returned by a read or filter.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})

	MenuItemsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "littlelemon_menu_items_inserted_total",
		Help: "Total number of menu rows inserted.",
	})

	MenuFilterRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "littlelemon_menu_filter_requests_total",
		Help: "Total number of filter requests by active predicate shape.",
	}, []string{"shape"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "littlelemon_http_requests_total",
		Help: "Total number of menu API requests by route and status code.",
	}, []string{"route", "code"})

	HTTPRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "littlelemon_http_rate_limited_total",
		Help: "Total number of menu API requests rejected by the rate limiter.",
	})

	ConfigReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "littlelemon_config_reloads_total",
		Help: "Total number of configuration reload attempts by result.",
	}, []string{"result"})
)

// FilterShape labels a filter by which predicates are active.
func FilterShape(hasCategories, hasSearch bool) string {
	switch {
	case hasCategories && hasSearch:
		return "category+search"
	case hasCategories:
		return "category"
	case hasSearch:
		return "search"
	default:
		return "all"
	}
}
