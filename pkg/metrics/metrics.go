package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя, чтобы метрики можно было отключить конфигом
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	availabilityTxTotal  *prometheus.CounterVec
	bookingsCreatedTotal *prometheus.CounterVec
	activeSubscriptions  *prometheus.GaugeVec
}

// New регистрирует метрики в default registry (его отдаёт promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		availabilityTxTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_transactions_total",
			Help:        "Availability counter transactions by operation and result",
			ConstLabels: constLabels,
		}, []string{"op", "result"}),
		bookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Booking creation attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		activeSubscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "availability_subscriptions_active",
			Help:        "Open availability subscriptions",
			ConstLabels: constLabels,
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.availabilityTxTotal,
		m.bookingsCreatedTotal,
		m.activeSubscriptions,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// IncAvailabilityTx op: decrease|increase|initialize, result: ok|no_capacity|no_availability|error
func (m *Metrics) IncAvailabilityTx(op, result string) {
	if m == nil {
		return
	}
	m.availabilityTxTotal.WithLabelValues(op, result).Inc()
}

func (m *Metrics) IncBookingsCreated(result string) {
	if m == nil {
		return
	}
	m.bookingsCreatedTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) AddSubscriptions(kind string, delta int) {
	if m == nil {
		return
	}
	m.activeSubscriptions.WithLabelValues(kind).Add(float64(delta))
}
