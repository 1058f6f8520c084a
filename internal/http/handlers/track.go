package handlers

import (
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"insightboard/internal/config"
	dbpkg "insightboard/internal/db"
)

var eventsIngestedTotal *prometheus.CounterVec

func InitPrometheusMetrics() {
	eventsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insightboard",
			Name:      "events_ingested_total",
			Help:      "Total number of tracked analytics events.",
		},
		[]string{"project", "event"},
	)
	prometheus.MustRegister(eventsIngestedTotal)
}

type trackRequest struct {
	EventName  string         `json:"event_name"`
	Properties map[string]any `json:"properties"`
}

// TrackEvent ingests one analytics event for the authenticated project.
func TrackEvent(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		project, ok := MustProject(ctx)
		if !ok {
			return
		}

		var payload trackRequest
		if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.EventName == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "event_name is required")
			return
		}

		if _, err := dbpkg.TrackEvent(db, project.ID, payload.EventName, payload.Properties, cfg.RetentionDays); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to persist event")
			return
		}

		if eventsIngestedTotal != nil {
			eventsIngestedTotal.WithLabelValues(project.ID, payload.EventName).Inc()
		}

		ctx.SetStatusCode(fasthttp.StatusAccepted)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"accepted"}`)
	}
}
