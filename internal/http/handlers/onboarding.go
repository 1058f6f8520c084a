package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"insightboard/internal/ai"
	"insightboard/internal/config"
	dbpkg "insightboard/internal/db"
)

const demoEventCount = 30

type onboardingRequest struct {
	CompanyName        string              `json:"company_name"`
	CompanyDescription string              `json:"company_description"`
	ApprovedMetrics    []ai.MetricProposal `json:"approved_metrics"`
}

// Onboarding provisions a new project: creates it with a fresh API
// key, seeds demo events so the dashboard is never empty, and runs the
// insight generator once. When the request carries metrics agreed
// during chat negotiation, generation is constrained to them;
// otherwise the generator explores the seeded sample freely.
func Onboarding(db *gorm.DB, gen *ai.Generator, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload onboardingRequest
		if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if payload.CompanyName == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "company_name is required")
			return
		}

		project, err := dbpkg.CreateProject(db, payload.CompanyName, payload.CompanyDescription)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create project")
			return
		}

		if _, err := dbpkg.SeedDemoEvents(db, project.ID, demoEventCount, cfg.RetentionDays); err != nil {
			log.Printf("demo seed failed for project %s: %v", project.ID, err)
		}

		sample, err := sampleEvents(db, project.ID, cfg.SampleLimit)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to sample events")
			return
		}

		insights := gen.Generate(ctx, project.Name, project.Description, sample, payload.ApprovedMetrics)
		if err := storeInsights(db, project.ID, insights); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to store insights")
			return
		}

		jsonResponse(ctx, map[string]any{
			"project_id":  project.ID,
			"api_key":     project.APIKey,
			"sdk_snippet": sdkSnippet(project.APIKey),
		})
	}
}

// sampleEvents loads the most recent events and shapes them into the
// generator's preview form.
func sampleEvents(db *gorm.DB, projectID string, limit int) ([]ai.EventSample, error) {
	events, err := dbpkg.RecentEvents(db, projectID, limit)
	if err != nil {
		return nil, err
	}
	sample := make([]ai.EventSample, 0, len(events))
	for _, ev := range events {
		sample = append(sample, ai.EventSample{
			EventName:  ev.EventName,
			Properties: ev.Properties,
		})
	}
	return sample, nil
}

func storeInsights(db *gorm.DB, projectID string, insights []ai.Insight) error {
	configs := make([]dbpkg.InsightConfig, 0, len(insights))
	for _, in := range insights {
		configs = append(configs, dbpkg.InsightConfig{
			Title:    in.Title,
			SQLQuery: in.SQLQuery,
		})
	}
	return dbpkg.ReplaceInsightConfigs(db, projectID, configs)
}

func sdkSnippet(apiKey string) string {
	return fmt.Sprintf(`fetch("/v1/track", {
  method: "POST",
  headers: { "Content-Type": "application/json", "X-API-Key": %q },
  body: JSON.stringify({ event_name: "signup", properties: { plan: "free" } })
});`, apiKey)
}
