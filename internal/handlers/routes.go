package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Match  *MatchHandler
	Job    *JobHandler
	Resume *ResumeHandler
}

// Register mounts the API routes under /api/v1.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/match/:jobCode", h.Match.HandleMatch)
	api.Post("/shortlists", h.Match.HandleCreateShortlist)
	api.Get("/shortlists/:jobCode", h.Match.HandleGetShortlist)

	api.Get("/jobs", h.Job.HandleList)
	api.Post("/jobs", h.Job.HandleCreate)
	api.Delete("/jobs/:id", h.Job.HandleDelete)

	api.Post("/resumes", h.Resume.HandleUpload)
	api.Get("/resumes", h.Resume.HandleList)
}
