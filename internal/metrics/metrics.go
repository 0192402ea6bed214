package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — коллекторы Prometheus сервиса: HTTP-запросы, время запросов к БД,
// попытки инициализации схемы и опубликованные события.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	BootstrapAttempts   *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
}

// NewMetrics создаёт метрики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employees_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employees_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'create_employee', 'list_employees', ...
		BootstrapAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_schema_bootstrap_attempts_total",
			Help: "Schema bootstrap attempts by outcome.",
		}, []string{"status"}),
		EventsPublished: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_events_published_total",
			Help: "Employee change events handed to the broker.",
		}, []string{"type", "status"}),
	}

	metrics.BootstrapAttempts.WithLabelValues("success")
	metrics.BootstrapAttempts.WithLabelValues("failure")

	return metrics
}

// ObserveQuery записывает длительность запроса, начатого в start.
// Вызывается как `defer m.ObserveQuery("get_employee", time.Now())`.
func (m *Metrics) ObserveQuery(queryType string, start time.Time) {
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}
