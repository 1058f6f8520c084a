package handlers

import (
	"strconv"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "insightboard/internal/db"
)

type recentEventRow struct {
	ID         uint           `json:"id"`
	CreatedAt  string         `json:"created_at"`
	EventName  string         `json:"event_name"`
	Properties map[string]any `json:"properties"`
}

// RecentEvents returns the authenticated project's most recent events,
// newest first. "limit" caps at 200.
func RecentEvents(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		project, ok := MustProject(ctx)
		if !ok {
			return
		}

		limit := 50
		if l := string(ctx.QueryArgs().Peek("limit")); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				limit = n
			}
		}
		if limit > 200 {
			limit = 200
		}

		events, err := dbpkg.RecentEvents(db, project.ID, limit)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query events")
			return
		}

		rows := make([]recentEventRow, 0, len(events))
		for _, ev := range events {
			rows = append(rows, recentEventRow{
				ID:         ev.ID,
				CreatedAt:  ev.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				EventName:  ev.EventName,
				Properties: ev.Properties,
			})
		}

		jsonResponse(ctx, map[string]any{"events": rows})
	}
}
