package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InvoiceMetrics tracks the invoice issuance workflow.
type InvoiceMetrics struct {
	InvoicesIssued      prometheus.Counter
	RenderFailures      prometheus.Counter
	PersistenceFailures prometheus.Counter
	EmailsSent          *prometheus.CounterVec
	EmailFailures       *prometheus.CounterVec
}

// NewInvoiceMetrics registers invoice workflow metrics on the given
// registerer. Tests pass a private registry to avoid collisions.
func NewInvoiceMetrics(reg prometheus.Registerer) *InvoiceMetrics {
	factory := promauto.With(reg)

	return &InvoiceMetrics{
		InvoicesIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "invoice_service",
			Name:      "invoices_issued_total",
			Help:      "Total number of invoices issued.",
		}),
		RenderFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "invoice_service",
			Name:      "render_failures_total",
			Help:      "Total number of PDF render failures.",
		}),
		PersistenceFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "invoice_service",
			Name:      "persistence_failures_total",
			Help:      "Total number of invoice row insert failures.",
		}),
		EmailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoice_service",
			Name:      "emails_sent_total",
			Help:      "Total number of invoice emails sent.",
		}, []string{"recipient"}),
		EmailFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoice_service",
			Name:      "email_failures_total",
			Help:      "Total number of invoice email delivery failures.",
		}, []string{"recipient"}),
	}
}

// Handler exposes the default Prometheus registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}
