package dashboard

import "github.com/prometheus/client_golang/prometheus"

var widgetFailuresTotal prometheus.Counter

// InitMetrics registers the renderer's Prometheus metrics. Call once
// from main before serving.
func InitMetrics() {
	widgetFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "insightboard",
		Name:      "widget_failures_total",
		Help:      "Stored insight queries that failed at render time and were skipped.",
	})
	prometheus.MustRegister(widgetFailuresTotal)
}

func observeWidgetFailure() {
	if widgetFailuresTotal != nil {
		widgetFailuresTotal.Inc()
	}
}
