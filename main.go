package main

import (
	"context"
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"insightboard/internal/ai"
	"insightboard/internal/config"
	"insightboard/internal/dashboard"
	"insightboard/internal/db"
	"insightboard/internal/http/handlers"
	appmw "insightboard/internal/http/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.StartRetentionWorker(sqlDB, cfg)

	if err := db.EnsureBootstrapAdmin(sqlDB, cfg); err != nil {
		log.Fatalf("failed to ensure bootstrap admin: %v", err)
	}

	aiClient, err := ai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		log.Fatalf("failed to create AI client: %v", err)
	}
	defer aiClient.Close()

	analyst := ai.NewAnalyst(aiClient)
	generator := ai.NewGenerator(aiClient)
	renderer := dashboard.NewRenderer(dashboard.NewSQLExecutor(sqlDB))

	ai.InitMetrics()
	dashboard.InitMetrics()
	handlers.InitPrometheusMetrics()

	r := router.New()

	handler := handlers.RequestLogger(r.Handler)

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	r.POST("/v1/chat-analyst", handlers.ChatAnalyst(analyst))
	r.POST("/v1/onboarding", handlers.Onboarding(sqlDB, generator, cfg))

	r.POST("/v1/track", appmw.APIKeyAuth(sqlDB)(handlers.TrackEvent(sqlDB, cfg)))
	r.GET("/v1/dashboard", appmw.APIKeyAuth(sqlDB)(handlers.Dashboard(sqlDB, renderer)))
	r.POST("/v1/insights/generate", appmw.APIKeyAuth(sqlDB)(handlers.GenerateInsights(sqlDB, generator, cfg)))
	r.GET("/v1/events/recent", appmw.APIKeyAuth(sqlDB)(handlers.RecentEvents(sqlDB)))

	r.GET("/v1/metrics", handlers.ProjectMetricsHandler(sqlDB))

	r.GET("/admin/projects", appmw.AdminAuth(sqlDB)(handlers.AdminProjects(sqlDB)))

	log.Printf("insightboard listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
