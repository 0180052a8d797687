package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// 訂位
	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"status"},
	)

	TicketsBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_booked_total",
			Help: "Total number of tickets reserved by bookings",
		},
	)

	BookingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_failures_total",
			Help: "Total number of rejected booking attempts",
		},
		[]string{"reason"}, // "validation", "not_found", "sold_out", "internal"
	)

	BookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total number of cancelled bookings",
		},
	)

	// 節目
	ShowsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shows_published_total",
			Help: "Total number of show publish operations",
		},
	)

	// 剩餘票數快取
	AvailabilityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "availability_cache_hits_total",
			Help: "Total number of availability reads served from cache",
		},
	)

	AvailabilityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "availability_cache_misses_total",
			Help: "Total number of availability reads that fell back to the database",
		},
	)

	InventoryEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_events_publish_failures_total",
			Help: "Total number of inventory events that could not be published",
		},
	)
)
