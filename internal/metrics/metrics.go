// Package metrics collects prometheus counters for the payment workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the service layer sees; the prometheus registry stays an
// implementation detail.
type Recorder interface {
	RecordIntentCreated()
	RecordPaymentConfirmed()
	RecordPaymentInsertFailure()
	RecordCartCleanupFailure()
	RecordNotificationFailure()
}

type Collector struct {
	intentsCreated  prometheus.Counter
	paymentsOK      prometheus.Counter
	insertFailures  prometheus.Counter
	cleanupFailures prometheus.Counter
	notifyFailures  prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		intentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bistro_payment_intents_created_total",
			Help: "Payment intents created at the gateway.",
		}),
		paymentsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bistro_payments_confirmed_total",
			Help: "Payment records durably persisted.",
		}),
		insertFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bistro_payment_insert_failures_total",
			Help: "Payment record inserts that failed after an external charge.",
		}),
		cleanupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bistro_cart_cleanup_failures_total",
			Help: "Cart removals that failed after a persisted payment.",
		}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bistro_notification_failures_total",
			Help: "Confirmation emails that could not be dispatched.",
		}),
	}
	reg.MustRegister(c.intentsCreated, c.paymentsOK, c.insertFailures, c.cleanupFailures, c.notifyFailures)
	return c
}

func (c *Collector) RecordIntentCreated()        { c.intentsCreated.Inc() }
func (c *Collector) RecordPaymentConfirmed()     { c.paymentsOK.Inc() }
func (c *Collector) RecordPaymentInsertFailure() { c.insertFailures.Inc() }
func (c *Collector) RecordCartCleanupFailure()   { c.cleanupFailures.Inc() }
func (c *Collector) RecordNotificationFailure()  { c.notifyFailures.Inc() }

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
