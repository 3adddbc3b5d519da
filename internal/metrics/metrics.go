// Package metrics provides the Prometheus-backed collector shared by the
// orchestrator services, plus a no-op collector for tests and minimal
// deployments.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "ctlpay_"

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRefused  = "refused"
	ResultOffline  = "offline"
	ResultRejected = "rejected"
)

var (
	registerOnce sync.Once
	shared       *Collector
)

// Collector records orchestrator activity into the default Prometheus
// registry. It satisfies the per-service recorder interfaces
// (connectivity.MetricsRecorder, transaction.MetricsRecorder,
// wallet.MetricsRecorder).
type Collector struct {
	probeResults   *prometheus.CounterVec
	loads          *prometheus.CounterVec
	payments       *prometheus.CounterVec
	paymentAmounts prometheus.Histogram
	topUps         *prometheus.CounterVec
	balance        prometheus.Gauge
}

// NewCollector returns the process-wide collector, registering the metric
// vectors exactly once.
func NewCollector() *Collector {
	registerOnce.Do(func() {
		shared = &Collector{
			probeResults: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: metricPrefix + "health_probes_total",
					Help: "Health probe outcomes by result",
				},
				[]string{"result"},
			),
			loads: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: metricPrefix + "transaction_loads_total",
					Help: "Transaction load attempts by result",
				},
				[]string{"result"},
			),
			payments: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: metricPrefix + "payments_total",
					Help: "Payment attempts by result",
				},
				[]string{"result"},
			),
			paymentAmounts: prometheus.NewHistogram(
				prometheus.HistogramOpts{
					Name:    metricPrefix + "payment_amount_fcfa",
					Help:    "Amounts of successful payments in FCFA",
					Buckets: prometheus.ExponentialBuckets(100, 2.5, 8),
				},
			),
			topUps: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: metricPrefix + "topups_total",
					Help: "Top-up attempts by result",
				},
				[]string{"result"},
			),
			balance: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: metricPrefix + "wallet_balance_fcfa",
					Help: "Last server-declared wallet balance in FCFA",
				},
			),
		}

		prometheus.MustRegister(
			shared.probeResults,
			shared.loads,
			shared.payments,
			shared.paymentAmounts,
			shared.topUps,
			shared.balance,
		)
	})
	return shared
}

func (c *Collector) RecordProbe(online bool) {
	result := ResultFailure
	if online {
		result = ResultSuccess
	}
	c.probeResults.WithLabelValues(result).Inc()
}

func (c *Collector) RecordLoad(result string) {
	c.loads.WithLabelValues(result).Inc()
}

func (c *Collector) RecordPayment(result string, amount int64) {
	c.payments.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		c.paymentAmounts.Observe(float64(amount))
	}
}

func (c *Collector) RecordTopUp(result string, amount int64) {
	c.topUps.WithLabelValues(result).Inc()
}

func (c *Collector) RecordBalance(balance int64) {
	c.balance.Set(float64(balance))
}
