package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
	logger  *zap.Logger
}

func NewJobHandler(jobRepo repositories.JobRepository, log *zap.Logger) *JobHandler {
	return &JobHandler{
		jobRepo: jobRepo,
		logger:  logger.OrNop(log),
	}
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll(c.UserContext())
	if err != nil {
		h.logger.Error("failed to list jobs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(jobs)
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	req.JobCode = strings.TrimSpace(req.JobCode)
	if req.JobCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_code is required",
		})
	}

	job := &models.Job{
		ID:                 uuid.New(),
		JobCode:            req.JobCode,
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		ExperienceRequired: req.ExperienceRequired,
		Qualifications:     req.Qualifications,
		Responsibilities:   req.Responsibilities,
		CreatedAt:          time.Now(),
	}

	if err := h.jobRepo.Create(c.UserContext(), job); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Job code already exists",
			})
		}
		h.logger.Error("failed to create job", zap.String("job_code", job.JobCode), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job added",
		"job":     job,
	})
}

// HandleDelete handles DELETE /jobs/:id
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.jobRepo.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		h.logger.Error("failed to delete job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Delete failed",
		})
	}

	return c.JSON(fiber.Map{"message": "Job deleted"})
}
