// Package metrics collects and exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the recorders.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records HTTP, provider, OAuth and login metrics.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	providerCalls *prometheus.CounterVec
	oauthFlows    *prometheus.CounterVec
	loginAttempts *prometheus.CounterVec
	replies       prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reputation_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reputation_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reputation_provider_calls_total",
			Help: "Calls to the Google APIs by operation and outcome.",
		}, []string{"operation", "outcome"}),
		oauthFlows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reputation_oauth_flows_total",
			Help: "OAuth consent flows by result.",
		}, []string{"result"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reputation_login_attempts_total",
			Help: "Dashboard login attempts by result.",
		}, []string{"result"}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reputation_review_replies_total",
			Help: "Review replies submitted.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.providerCalls,
		c.oauthFlows,
		c.loginAttempts,
		c.replies,
	)

	return c
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}

// ProviderCall records the outcome of one call to a Google API.
func (c *Collector) ProviderCall(operation, outcome string) {
	c.providerCalls.WithLabelValues(operation, outcome).Inc()
}

// OAuthFlow records how an OAuth consent flow ended.
func (c *Collector) OAuthFlow(result string) {
	c.oauthFlows.WithLabelValues(result).Inc()
}

// LoginAttempt records a login attempt.
func (c *Collector) LoginAttempt(success bool) {
	result := OutcomeFailure
	if success {
		result = OutcomeSuccess
	}
	c.loginAttempts.WithLabelValues(result).Inc()
}

// ReviewReplied records a submitted reply.
func (c *Collector) ReviewReplied() {
	c.replies.Inc()
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
