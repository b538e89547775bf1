package monitoring

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total bookings created",
		},
	)

	bookingAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_amount_units",
			Help:    "Booking amounts in whole currency units",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 8),
		},
	)

	paymentOrders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_orders_total",
			Help: "Total payment-provider order creations",
		},
		[]string{"status"},
	)

	paymentConfirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_confirmations_total",
			Help: "Total payment confirmation attempts",
		},
		[]string{"result"},
	)

	bookingsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookings_by_status",
			Help: "Current number of bookings per payment status",
		},
		[]string{"payment_status"},
	)
)

// TrackBookingCreated records a created booking and its amount.
func TrackBookingCreated(amount int64) {
	bookingsCreated.Inc()
	bookingAmount.Observe(float64(amount))
}

// TrackOrder records a provider order creation outcome.
func TrackOrder(status string) {
	paymentOrders.WithLabelValues(status).Inc()
}

// TrackConfirmation records a confirmation attempt outcome.
func TrackConfirmation(result string) {
	paymentConfirmations.WithLabelValues(result).Inc()
}

type Monitor struct {
	app core.App
}

// NewMonitor starts periodic collection of store-derived gauges.
func NewMonitor(ctx context.Context, app core.App) *Monitor {
	monitor := &Monitor{app: app}

	go monitor.collectMetrics(ctx)

	return monitor
}

func (m *Monitor) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectBookingMetrics()
		}
	}
}

func (m *Monitor) collectBookingMetrics() {
	var rows []dbx.NullStringMap
	err := m.app.DB().
		NewQuery("SELECT payment_status, COUNT(*) AS total FROM bookings GROUP BY payment_status").
		All(&rows)
	if err != nil {
		slog.Error("monitor: collect booking metrics", "error", err)
		return
	}

	for _, row := range rows {
		status := row["payment_status"].String
		if status == "" {
			continue
		}
		total, _ := strconv.ParseFloat(row["total"].String, 64)
		bookingsByStatus.WithLabelValues(status).Set(total)
	}
}
