// Package metrics
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orion"

// Provider owns the service collectors. A nil *Provider is valid and records nothing.
type Provider struct {
	registry *prometheus.Registry

	gateDecisions   *prometheus.CounterVec
	gateEvaluations *prometheus.CounterVec
	chainRequests   *prometheus.CounterVec
	chainLatency    *prometheus.HistogramVec
	pricePolls      *prometheus.CounterVec
}

func New() *Provider {
	p := &Provider{
		registry: prometheus.NewRegistry(),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Residency decisions written, by resulting state.",
		}, []string{"state"}),
		gateEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "evaluations_total",
			Help:      "Gate evaluations, by view served.",
		}, []string{"view"}),
		chainRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "requests_total",
			Help:      "Node API reads, by operation and result.",
		}, []string{"op", "result"}),
		chainLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "request_duration_seconds",
			Help:      "Node API read latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		pricePolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prices",
			Name:      "polls_total",
			Help:      "Price feed polls, by feed and outcome.",
		}, []string{"feed", "outcome"}),
	}
	p.registry.MustRegister(
		collectors.NewGoCollector(),
		p.gateDecisions,
		p.gateEvaluations,
		p.chainRequests,
		p.chainLatency,
		p.pricePolls,
	)
	return p
}

func (p *Provider) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *Provider) Handler() http.Handler {
	if p == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Provider) RecordDecision(state string) {
	if p == nil {
		return
	}
	p.gateDecisions.WithLabelValues(state).Inc()
}

func (p *Provider) RecordEvaluation(view string) {
	if p == nil {
		return
	}
	p.gateEvaluations.WithLabelValues(view).Inc()
}

func (p *Provider) RecordChainRequest(op string, started time.Time, err error) {
	if p == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.chainRequests.WithLabelValues(op, result).Inc()
	p.chainLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (p *Provider) RecordPricePoll(feed, outcome string) {
	if p == nil {
		return
	}
	p.pricePolls.WithLabelValues(feed, outcome).Inc()
}

// PricePolls exposes the poll counter of feed and outcome. A nil provider hands
// out an unregistered counter that stays at zero.
func (p *Provider) PricePolls(feed, outcome string) prometheus.Counter {
	if p == nil {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: "orion_price_polls_total"})
	}
	return p.pricePolls.WithLabelValues(feed, outcome)
}
