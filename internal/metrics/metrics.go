package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Виды запросов для метки kind
const (
	KindLine         = "line"
	KindBlockingLine = "blocking_line"
	KindCircle       = "circle"
	KindInCircle     = "in_circle"
	KindCells        = "cells"
	KindLineOfSight  = "los"
)

// QueryMetrics инкапсулирует Prometheus-метрики пространственных запросов.
// Нулевой указатель допустим: все методы становятся пустыми.
type QueryMetrics struct {
	queries    *prometheus.CounterVec
	candidates *prometheus.HistogramVec
	hits       *prometheus.HistogramVec
	cells      prometheus.Histogram
	blocked    prometheus.Counter
}

// NewQueryMetrics создаёт метрики и регистрирует их в reg (nil - глобальный регистр Prometheus)
func NewQueryMetrics(reg prometheus.Registerer) *QueryMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	countBuckets := prometheus.ExponentialBuckets(1, 2, 12)

	qm := &QueryMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spatial",
			Name:      "queries_total",
			Help:      "Общее число пространственных запросов по видам.",
		}, []string{"kind"}),
		candidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spatial",
			Name:      "query_candidates",
			Help:      "Сколько актёров вернул индекс до точной проверки.",
			Buckets:   countBuckets,
		}, []string{"kind"}),
		hits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spatial",
			Name:      "query_hits",
			Help:      "Сколько актёров попало в результат запроса.",
			Buckets:   countBuckets,
		}, []string{"kind"}),
		cells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spatial",
			Name:      "cells_scanned",
			Help:      "Сколько клеток пройдено при обходе линии.",
			Buckets:   countBuckets,
		}),
		blocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spatial",
			Name:      "line_of_sight_blocked_total",
			Help:      "Сколько проверок линии обзора завершились перекрытием.",
		}),
	}

	reg.MustRegister(qm.queries, qm.candidates, qm.hits, qm.cells, qm.blocked)
	return qm
}

// ObserveActorQuery учитывает запрос актёров
func (m *QueryMetrics) ObserveActorQuery(kind string, candidates, hits int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(kind).Inc()
	m.candidates.WithLabelValues(kind).Observe(float64(candidates))
	m.hits.WithLabelValues(kind).Observe(float64(hits))
}

// ObserveTraversal учитывает обход клеток линии
func (m *QueryMetrics) ObserveTraversal(cells int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(KindCells).Inc()
	m.cells.Observe(float64(cells))
}

// ObserveLineOfSight учитывает проверку линии обзора
func (m *QueryMetrics) ObserveLineOfSight(scanned int, blocked bool) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(KindLineOfSight).Inc()
	m.cells.Observe(float64(scanned))
	if blocked {
		m.blocked.Inc()
	}
}

// Serve запускает HTTP-эндпоинт /metrics на addr (например, ":2112").
// Метод неблокирующий: сервер стартует в отдельной горутине, ошибки уходят в errFn.
func Serve(addr string, gatherer prometheus.Gatherer, errFn func(error)) *http.Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed && errFn != nil {
			errFn(err)
		}
	}()
	return srv
}
