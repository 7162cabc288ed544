package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Используется собственный registry, чтобы несколько экземпляров (тесты) не конфликтовали
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	bookingsCreatedTotal  *prometheus.CounterVec
	bookingActionsTotal   *prometheus.CounterVec
	paymentsTotal         *prometheus.CounterVec
	integrationCallsTotal *prometheus.CounterVec
	tokenRefreshesTotal   *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created through the service by payment type",
			ConstLabels: constLabels,
		}, []string{"payment_type"}),
		bookingActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_actions_total",
			Help:        "Booking lifecycle actions by action and result",
			ConstLabels: constLabels,
		}, []string{"action", "result"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_total",
			Help:        "Payment records by method and resulting status",
			ConstLabels: constLabels,
		}, []string{"method", "status"}),
		integrationCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "integration_calls_total",
			Help:        "Calls to the remote rental API by endpoint and outcome",
			ConstLabels: constLabels,
		}, []string{"endpoint", "outcome"}),
		tokenRefreshesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "token_refreshes_total",
			Help:        "Access token refresh attempts after 401",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.bookingsCreatedTotal,
		m.bookingActionsTotal,
		m.paymentsTotal,
		m.integrationCallsTotal,
		m.tokenRefreshesTotal,
	)

	return m
}

// Handler HTTP handler для endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry (для тестов и дополнительных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) BookingCreated(paymentType string) {
	m.bookingsCreatedTotal.WithLabelValues(paymentType).Inc()
}

func (m *Metrics) BookingAction(action, result string) {
	m.bookingActionsTotal.WithLabelValues(action, result).Inc()
}

func (m *Metrics) Payment(method, status string) {
	m.paymentsTotal.WithLabelValues(method, status).Inc()
}

func (m *Metrics) IntegrationCall(endpoint, outcome string) {
	m.integrationCallsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) TokenRefresh(result string) {
	m.tokenRefreshesTotal.WithLabelValues(result).Inc()
}
