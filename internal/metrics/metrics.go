// Package metrics provides Prometheus metrics for docquery.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docquery/internal/answer"
)

// Metrics holds all Prometheus collectors for docquery.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AnswerTierEvents *prometheus.CounterVec
	AnswersTotal     *prometheus.CounterVec

	LLMCallsTotal   *prometheus.CounterVec
	PDFPagesTotal   prometheus.Counter
	RegexSearchHits prometheus.Histogram
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docquery_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docquery_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		AnswerTierEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docquery_answer_tier_events_total",
				Help: "Answer cascade events by tier and outcome",
			},
			[]string{"tier", "event"},
		),
		AnswersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docquery_answers_total",
				Help: "Answer requests by the tier that produced the result",
			},
			[]string{"pattern_used"},
		),
		LLMCallsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docquery_llm_calls_total",
				Help: "LLM provider calls by provider and status",
			},
			[]string{"provider", "status"},
		),
		PDFPagesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "docquery_pdf_pages_total",
				Help: "Total number of PDF pages extracted",
			},
		),
		RegexSearchHits: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docquery_regex_search_hits",
				Help:    "Number of matches returned per regex search",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(path, method string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

func (m *Metrics) RecordLLMCall(provider string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.LLMCallsTotal.WithLabelValues(provider, status).Inc()
}

// AnswerMonitor counts cascade events.
func (m *Metrics) AnswerMonitor() answer.Monitor {
	return answerMonitor{m: m}
}

type answerMonitor struct {
	m *Metrics
}

func (a answerMonitor) Start(string, []string) {}

func (a answerMonitor) TierAttempted(s answer.Strategy) {
	a.m.AnswerTierEvents.WithLabelValues(s.String(), "attempted").Inc()
}

func (a answerMonitor) TierFailed(s answer.Strategy, _ error) {
	a.m.AnswerTierEvents.WithLabelValues(s.String(), "failed").Inc()
}

func (a answerMonitor) TierEmpty(s answer.Strategy) {
	a.m.AnswerTierEvents.WithLabelValues(s.String(), "empty").Inc()
}

func (a answerMonitor) TierMatched(s answer.Strategy, _ int) {
	a.m.AnswerTierEvents.WithLabelValues(s.String(), "matched").Inc()
}

func (a answerMonitor) Finish(res answer.Result) {
	a.m.AnswersTotal.WithLabelValues(res.PatternUsed.String()).Inc()
}
