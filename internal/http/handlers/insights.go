package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"insightboard/internal/ai"
	"insightboard/internal/config"
	dbpkg "insightboard/internal/db"
)

// GenerateInsights regenerates the authenticated project's insight set
// from its current event stream. The previous set is replaced
// atomically; a project with no events keeps its existing configs and
// gets an advisory error body instead.
func GenerateInsights(db *gorm.DB, gen *ai.Generator, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		project, ok := MustProject(ctx)
		if !ok {
			return
		}

		count, err := dbpkg.CountEvents(db, project.ID)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to count events")
			return
		}
		if count == 0 {
			jsonResponse(ctx, map[string]any{
				"status":  "error",
				"message": "No data found.",
			})
			return
		}

		sample, err := sampleEvents(db, project.ID, cfg.SampleLimit)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to sample events")
			return
		}

		// Exploratory regeneration: no approved metrics constrain the
		// model here, the event stream alone drives the proposals.
		insights := gen.Generate(ctx, project.Name, project.Description, sample, nil)
		if err := storeInsights(db, project.ID, insights); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to store insights")
			return
		}

		titles := make([]string, 0, len(insights))
		for _, in := range insights {
			titles = append(titles, in.Title)
		}
		jsonResponse(ctx, map[string]any{
			"status":   "success",
			"insights": titles,
		})
	}
}
