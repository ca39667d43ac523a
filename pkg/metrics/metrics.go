// Package metrics содержит Prometheus-коллекторы сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса. Создается один раз в main и
// прокидывается в middleware и обертку БД.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec

	bookingsCreatedTotal    *prometheus.CounterVec
	bookingTransitionsTotal *prometheus.CounterVec
	pointsEarnedTotal       prometheus.Counter
	pointsRedeemedTotal     prometheus.Counter
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		dbIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		bookingsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: constLabels,
		}, []string{"meeting_type"}),

		bookingTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Total number of booking lifecycle transitions",
			ConstLabels: constLabels,
		}, []string{"action", "to_status"}),

		pointsEarnedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "points_earned_total",
			Help:        "Total loyalty points credited",
			ConstLabels: constLabels,
		}),

		pointsRedeemedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "points_redeemed_total",
			Help:        "Total loyalty points debited",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbOpenConns.WithLabelValues("open").Set(float64(open))
	m.dbOpenConns.WithLabelValues("in_use").Set(float64(inUse))
	m.dbIdleConns.WithLabelValues("idle").Set(float64(idle))
}

// IncBookingCreated фиксирует создание бронирования
func (m *Metrics) IncBookingCreated(meetingType string) {
	m.bookingsCreatedTotal.WithLabelValues(meetingType).Inc()
}

// IncBookingTransition фиксирует переход статуса
func (m *Metrics) IncBookingTransition(action, toStatus string) {
	m.bookingTransitionsTotal.WithLabelValues(action, toStatus).Inc()
}

// AddPointsEarned фиксирует начисленные баллы
func (m *Metrics) AddPointsEarned(points int64) {
	m.pointsEarnedTotal.Add(float64(points))
}

// AddPointsRedeemed фиксирует списанные баллы
func (m *Metrics) AddPointsRedeemed(points int64) {
	m.pointsRedeemedTotal.Add(float64(points))
}
