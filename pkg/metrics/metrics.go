package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-метрики сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbPoolOpen      prometheus.Gauge
	dbPoolInUse     prometheus.Gauge
	dbPoolIdle      prometheus.Gauge

	slotsMaterialized prometheus.Counter
	slotEventsTotal   *prometheus.CounterVec
	slotShiftsTotal   *prometheus.CounterVec
	overbookedSlots   prometheus.Counter
}

// New создает и регистрирует метрики в default registry
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
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}),
		dbPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		dbPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}),
		slotsMaterialized: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slots_materialized_total",
			Help:        "Total number of slots produced by materialization",
			ConstLabels: constLabels,
		}),
		slotEventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_events_total",
			Help:        "Total number of slot lifecycle events",
			ConstLabels: constLabels,
		}, []string{"event"}),
		slotShiftsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_shifts_total",
			Help:        "Total number of slot shift operations",
			ConstLabels: constLabels,
		}, []string{"direction"}),
		overbookedSlots: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "overbooked_slots_total",
			Help:        "Total number of detected overbooked slot states",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	m.dbPoolOpen.Set(float64(stats.OpenConnections))
	m.dbPoolInUse.Set(float64(stats.InUse))
	m.dbPoolIdle.Set(float64(stats.Idle))
}

// AddSlotsMaterialized увеличивает счётчик сгенерированных слотов
func (m *Metrics) AddSlotsMaterialized(n int) {
	m.slotsMaterialized.Add(float64(n))
}

// IncSlotEvent увеличивает счётчик событий слотов (created/updated/removed)
func (m *Metrics) IncSlotEvent(event string) {
	m.slotEventsTotal.WithLabelValues(event).Inc()
}

// IncSlotShift увеличивает счётчик сдвигов (extend/compress)
func (m *Metrics) IncSlotShift(direction string) {
	m.slotShiftsTotal.WithLabelValues(direction).Inc()
}

// IncOverbooked увеличивает счётчик обнаруженных перебронированных слотов
func (m *Metrics) IncOverbooked() {
	m.overbookedSlots.Inc()
}
