package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "insightboard/internal/db"
	httpctx "insightboard/internal/http/ctx"
)

// APIKeyAuth validates the X-API-Key header against projects in the
// database and sets the resolved project on the request context.
func APIKeyAuth(db *gorm.DB) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			key := strings.TrimSpace(string(ctx.Request.Header.Peek("X-API-Key")))
			if key == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("missing X-API-Key header")
				return
			}

			project, err := dbpkg.ProjectByAPIKey(db, key)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("database error")
				return
			}
			if project == nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				ctx.SetBodyString("invalid API key")
				return
			}

			httpctx.SetProject(ctx, project)
			next(ctx)
		}
	}
}
