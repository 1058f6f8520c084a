package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsTotal *prometheus.CounterVec
	chatTurnsTotal   *prometheus.CounterVec
	modelCallSeconds prometheus.Histogram
)

// InitMetrics registers the AI pipeline's Prometheus metrics. Call
// once from main before serving.
func InitMetrics() {
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insightboard",
			Name:      "generations_total",
			Help:      "Insight generation runs by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)
	chatTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insightboard",
			Name:      "chat_turns_total",
			Help:      "Analyst negotiation turns by classified phase (or degraded).",
		},
		[]string{"phase"},
	)
	modelCallSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "insightboard",
			Name:      "model_call_seconds",
			Help:      "Latency of outbound model calls, including failed attempts.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
	prometheus.MustRegister(generationsTotal, chatTurnsTotal, modelCallSeconds)
}

func observeGeneration(mode, outcome string) {
	if generationsTotal != nil {
		generationsTotal.WithLabelValues(mode, outcome).Inc()
	}
}

func observeChatTurn(phase string) {
	if chatTurnsTotal != nil {
		chatTurnsTotal.WithLabelValues(phase).Inc()
	}
}

func observeModelCall(d time.Duration) {
	if modelCallSeconds != nil {
		modelCallSeconds.Observe(d.Seconds())
	}
}
