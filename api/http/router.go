package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobscout/agent/api/http/handlers"
)

// Handlers bundles everything Register wires onto the app.
type Handlers struct {
	Health  *handlers.HealthHandler
	Parse   *handlers.ParseHandler
	Jobs    *handlers.JobsHandler
	Analyze *handlers.AnalyzeHandler
	Letter  *handlers.LetterHandler
	Chat    *handlers.ChatHandler
	Harvest *handlers.HarvestHandler
}

// Register wires all HTTP routes onto the given Fiber app. adminMW guards
// the mutating operator routes; pass nil to leave them open (tests).
func Register(app *fiber.App, h Handlers, adminMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	v1.Post("/parse/resume", h.Parse.Parse)

	jg := v1.Group("/jobs")
	jg.Post("/ingest", h.Jobs.Ingest)
	jg.Post("/search", h.Jobs.Search)
	jg.Get("/search", h.Jobs.Search)
	jg.Get("/recent", h.Jobs.Recent)
	jg.Get("/all", h.Jobs.All)

	v1.Post("/analyze", h.Analyze.Analyze)
	v1.Post("/qa", h.Analyze.QA)
	v1.Post("/cover-letter", h.Letter.Draft)
	v1.Post("/chat/ask", h.Chat.Ask)

	// Operator routes
	if adminMW != nil {
		v1.Post("/harvest/run", adminMW, h.Harvest.Run)
		jg.Post("/cleanup", adminMW, h.Jobs.Cleanup)
		jg.Delete("/cleanup", adminMW, h.Jobs.Cleanup)
	} else {
		v1.Post("/harvest/run", h.Harvest.Run)
		jg.Post("/cleanup", h.Jobs.Cleanup)
		jg.Delete("/cleanup", h.Jobs.Cleanup)
	}

	// Path param route last so /jobs/search etc. keep precedence.
	jg.Get("/:id", h.Jobs.Get)
}
