package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for form signing.
type Metrics struct {
	formsIssued   *prometheus.CounterVec
	errors        *prometheus.CounterVec
	verifications *prometheus.CounterVec
	signDuration  prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests
// to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		formsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transparent_forms_issued_total",
			Help: "Signed transparent redirect forms issued, by action.",
		}, []string{"action"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transparent_errors_total",
			Help: "Signing and verification failures, by error kind.",
		}, []string{"kind"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transparent_verifications_total",
			Help: "Token verifications, by result.",
		}, []string{"result"}),
		signDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transparent_sign_duration_seconds",
			Help:    "Time spent canonicalizing and signing a form.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
	}

	reg.MustRegister(m.formsIssued, m.errors, m.verifications, m.signDuration)
	return m
}

func (m *Metrics) FormIssued(action string) {
	m.formsIssued.WithLabelValues(action).Inc()
}

func (m *Metrics) Error(kind string) {
	m.errors.WithLabelValues(kind).Inc()
}

func (m *Metrics) Verification(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSign(d time.Duration) {
	m.signDuration.Observe(d.Seconds())
}
