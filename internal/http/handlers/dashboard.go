package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"insightboard/internal/dashboard"
	dbpkg "insightboard/internal/db"
)

// Dashboard renders the authenticated project's dashboard: every
// stored insight config is executed against live data and shaped into
// a typed widget. Configs whose queries fail are skipped by the
// renderer, so a stale insight never takes the page down.
func Dashboard(db *gorm.DB, renderer *dashboard.Renderer) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		project, ok := MustProject(ctx)
		if !ok {
			return
		}

		configs, err := dbpkg.InsightConfigsByProject(db, project.ID)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load insight configs")
			return
		}

		widgets := renderer.Render(ctx, configs, project.ID)

		jsonResponse(ctx, map[string]any{
			"company_name": project.Name,
			"widgets":      widgets,
		})
	}
}
