package monitoring

import (
	"errors"
	"log"
	"time"

	"facility-booking/internal/status"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	reservationOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Reservation create attempts by outcome",
		},
		[]string{"outcome"},
	)

	reservationCreateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reservation_create_duration_seconds",
			Help:    "Duration of the reservation create transaction",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	systemOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_system_open",
			Help: "Whether the booking system currently accepts reservations",
		},
	)

	paymentReviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reviews_total",
			Help: "Admin payment review decisions",
		},
		[]string{"result"},
	)

	slipVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slip_verifications_total",
			Help: "Slip verification submissions by outcome",
		},
		[]string{"outcome"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// TrackReservationCreate records one create attempt.
func TrackReservationCreate(duration time.Duration, err error) {
	reservationCreateDuration.Observe(duration.Seconds())

	switch {
	case err == nil:
		reservationOps.WithLabelValues("created").Inc()
	case errors.Is(err, status.ErrSlotTaken):
		reservationOps.WithLabelValues("conflict").Inc()
	default:
		reservationOps.WithLabelValues("error").Inc()
	}
}

func TrackSystemOpen(open bool) {
	if open {
		systemOpen.Set(1)
	} else {
		systemOpen.Set(0)
	}
}

func TrackPaymentReview(result string) {
	paymentReviews.WithLabelValues(result).Inc()
}

func TrackSlipVerify(outcome string) {
	slipVerifications.WithLabelValues(outcome).Inc()
}

func TrackRateLimited() {
	rateLimited.Inc()
}

// StartMetricsServer exposes /metrics on its own port.
func StartMetricsServer(port string) {
	e := echo.New()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		if err := e.Start(":" + port); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()
}
