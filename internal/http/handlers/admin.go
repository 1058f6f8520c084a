package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "insightboard/internal/db"
)

type projectSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"created_at"`
	EventCount   int64  `json:"event_count"`
	InsightCount int64  `json:"insight_count"`
}

// AdminProjects lists every project with its event and insight counts.
// Operator-only; guarded by Basic auth upstream.
func AdminProjects(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var projects []dbpkg.Project
		if err := db.Order("created_at DESC").Find(&projects).Error; err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query projects")
			return
		}

		rows := make([]projectSummary, 0, len(projects))
		for _, p := range projects {
			eventCount, err := dbpkg.CountEvents(db, p.ID)
			if err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to count events")
				return
			}
			var insightCount int64
			if err := db.Model(&dbpkg.InsightConfig{}).Where("project_id = ?", p.ID).Count(&insightCount).Error; err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to count insights")
				return
			}
			rows = append(rows, projectSummary{
				ID:           p.ID,
				Name:         p.Name,
				CreatedAt:    p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				EventCount:   eventCount,
				InsightCount: insightCount,
			})
		}

		jsonResponse(ctx, map[string]any{"projects": rows})
	}
}
