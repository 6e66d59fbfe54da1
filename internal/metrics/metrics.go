// Package metrics содержит Prometheus-метрики анализатора и HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors of the service.
type Metrics struct {
	linesCounter     *prometheus.CounterVec
	analysesCounter  *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	rankedURLsGauge  prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New регистрирует метрики в собственном реестре, чтобы тесты и
// несколько экземпляров не конфликтовали с глобальным.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		linesCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toplog_lines_total",
				Help: "Non-empty log lines seen, by parse result",
			},
			[]string{"result"},
		),
		analysesCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toplog_analyses_total",
				Help: "Analyses run, by outcome",
			},
			[]string{"status"},
		),
		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "toplog_analysis_duration_seconds",
				Help:    "Time to parse and rank one log",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms .. ~30s
			},
		),
		rankedURLsGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "toplog_ranked_urls",
				Help: "Distinct URLs in the last ranking",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toplog_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toplog_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.linesCounter,
		m.analysesCounter,
		m.analysisDuration,
		m.rankedURLsGauge,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// ObserveAnalysis записывает результат одного анализа.
func (m *Metrics) ObserveAnalysis(parsed, skipped, rankedURLs int, d time.Duration) {
	m.linesCounter.WithLabelValues("parsed").Add(float64(parsed))
	m.linesCounter.WithLabelValues("skipped").Add(float64(skipped))
	m.analysesCounter.WithLabelValues("ok").Inc()
	m.analysisDuration.Observe(d.Seconds())
	m.rankedURLsGauge.Set(float64(rankedURLs))
}

// AnalysisFailed считает анализ, который не дошёл до разбора.
func (m *Metrics) AnalysisFailed() {
	m.analysesCounter.WithLabelValues("error").Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
