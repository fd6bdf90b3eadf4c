package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bhrigu136/shopify-ai-analytics/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when no database-backed credential store is configured.
func RegisterRoutes(app *fiber.App, db Pinger, questionSvc service.QuestionService) {
	app.Get("/up", LivenessProbe())
	app.Get("/healthz", LivenessProbe())
	app.Get("/health", HealthCheck(db))

	v1 := app.Group("/api/v1")
	v1.Post("/questions", AskQuestion(questionSvc))
}
