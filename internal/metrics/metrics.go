package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// Metrics holds the ledger's Prometheus collectors. A nil *Metrics is valid and
// records nothing, which keeps tests free of registry setup.
type Metrics struct {
	entriesCreated     prometheus.Counter
	entriesPosted      prometheus.Counter
	entriesReversed    prometheus.Counter
	vouchersApproved   prometheus.Counter
	vouchersCancelled  prometheus.Counter
	sideEffectFailures *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers the ledger collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		entriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_created_total",
			Help:      "Journal entries created as drafts.",
		}),
		entriesPosted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_posted_total",
			Help:      "Journal entries moved from draft to posted.",
		}),
		entriesReversed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_reversed_total",
			Help:      "Posted journal entries reversed.",
		}),
		vouchersApproved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vouchers_approved_total",
			Help:      "Vouchers approved into a posted journal entry.",
		}),
		vouchersCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vouchers_cancelled_total",
			Help:      "Vouchers cancelled.",
		}),
		sideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Post-commit hook failures, by hook.",
		}, []string{"hook"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of ledger operations, by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) EntryCreated() {
	if m != nil {
		m.entriesCreated.Inc()
	}
}

func (m *Metrics) EntryPosted() {
	if m != nil {
		m.entriesPosted.Inc()
	}
}

func (m *Metrics) EntryReversed() {
	if m != nil {
		m.entriesReversed.Inc()
	}
}

func (m *Metrics) VoucherApproved() {
	if m != nil {
		m.vouchersApproved.Inc()
	}
}

func (m *Metrics) VoucherCancelled() {
	if m != nil {
		m.vouchersCancelled.Inc()
	}
}

// SideEffectFailed counts one failed run of the named hook.
func (m *Metrics) SideEffectFailed(hook string) {
	if m != nil {
		m.sideEffectFailures.WithLabelValues(hook).Inc()
	}
}

// ObserveOperation records how long an operation took. Use it with defer:
//
//	defer m.ObserveOperation("post_entry", time.Now(), &err)
func (m *Metrics) ObserveOperation(operation string, start time.Time, errp *error) {
	if m == nil {
		return
	}
	outcome := "success"
	if errp != nil && *errp != nil {
		outcome = "error"
	}
	m.operationDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
