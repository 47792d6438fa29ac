// Package metrics holds the Prometheus collectors for the portal.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cafe_portal"

// Cart operation kinds.
const (
	CartAdd          = "add"
	CartQuantity     = "quantity"
	CartCustomize    = "customize"
	CartRemove       = "remove"
	CartReset        = "reset"
	CartInvalidInput = "invalid"
)

// Submission outcomes.
const (
	SubmitPlaced      = "placed"
	SubmitValidation  = "validation"
	SubmitSinkFailure = "sink_failure"
	SubmitInProgress  = "in_progress"
)

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid"
	LoginError   = "error"
)

type Metrics struct {
	CartOperations  *prometheus.CounterVec
	Submissions     *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	ActiveComposers prometheus.GaugeFunc
	SinkLatency     prometheus.Histogram
	gatherer        prometheus.Gatherer
}

// New registers the collectors on a fresh registry. activeComposers is
// sampled on every scrape.
func New(activeComposers func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		CartOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart edits by kind.",
		}, []string{"kind"}),
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_submissions_total",
			Help:      "Order submissions by outcome.",
		}, []string{"outcome"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by portal and outcome.",
		}, []string{"portal", "outcome"}),
		ActiveComposers: f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_order_composers",
			Help:      "Signed-in users holding an order in progress.",
		}, func() float64 { return float64(activeComposers()) }),
		SinkLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_sink_duration_seconds",
			Help:      "Time spent handing an order to the sink.",
			Buckets:   prometheus.DefBuckets,
		}),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Cart(kind string) {
	m.CartOperations.WithLabelValues(kind).Inc()
}

func (m *Metrics) Submission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Login(portal, outcome string) {
	m.LoginAttempts.WithLabelValues(portal, outcome).Inc()
}
