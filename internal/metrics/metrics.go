package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	quotesCalculated *prometheus.CounterVec
	quoteFailures    *prometheus.CounterVec
	memoryFetches    *prometheus.CounterVec
	memoryStores     *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	quoteEvents      *prometheus.CounterVec
	pricingVersion   *prometheus.GaugeVec
	requestDuration  *prometheus.HistogramVec
}

// New registers the collectors on reg; pass prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		quotesCalculated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_service_quotes_calculated_total",
				Help: "Total number of quotes priced and saved",
			},
			[]string{"plan_type", "risk_category"},
		),

		quoteFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_service_quote_failures_total",
				Help: "Total number of quote requests that failed",
			},
			[]string{"reason"},
		),

		memoryFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_service_memory_fetches_total",
				Help: "Total number of knowledge-graph fact fetches by outcome",
			},
			[]string{"status"},
		),

		memoryStores: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_service_memory_stores_total",
				Help: "Total number of conversation messages sent to the knowledge graph",
			},
			[]string{"result"},
		),

		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_service_catalog_cache_lookups_total",
				Help: "Total number of catalog cache lookups",
			},
			[]string{"backend", "result"},
		),

		quoteEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_service_quote_events_total",
				Help: "Total number of quote-created events by publish outcome",
			},
			[]string{"result"},
		),

		pricingVersion: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quote_service_pricing_config_info",
				Help: "Set to 1 for the active pricing configuration version",
			},
			[]string{"version"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quote_service_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) RecordQuote(planType, riskCategory string) {
	if m == nil {
		return
	}
	m.quotesCalculated.WithLabelValues(planType, riskCategory).Inc()
}

func (m *Metrics) RecordQuoteFailure(reason string) {
	if m == nil {
		return
	}
	m.quoteFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordMemoryFetch(status string) {
	if m == nil {
		return
	}
	m.memoryFetches.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordMemoryStore(stored bool) {
	if m == nil {
		return
	}
	result := "failed"
	if stored {
		result = "stored"
	}
	m.memoryStores.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordCacheLookup(backend string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(backend, result).Inc()
}

func (m *Metrics) RecordQuoteEvent(published bool) {
	if m == nil {
		return
	}
	result := "failed"
	if published {
		result = "published"
	}
	m.quoteEvents.WithLabelValues(result).Inc()
}

// SetPricingVersion marks version as the only active one.
func (m *Metrics) SetPricingVersion(version string) {
	if m == nil {
		return
	}
	m.pricingVersion.Reset()
	m.pricingVersion.WithLabelValues(version).Set(1)
}

func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
