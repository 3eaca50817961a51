package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type MatchHandler struct {
	matcher       services.MatcherService
	shortlistRepo repositories.ShortlistRepository
	logger        *zap.Logger
}

func NewMatchHandler(
	matcher services.MatcherService,
	shortlistRepo repositories.ShortlistRepository,
	log *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		matcher:       matcher,
		shortlistRepo: shortlistRepo,
		logger:        logger.OrNop(log),
	}
}

// HandleMatch handles POST /match/:jobCode
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	jobCode := c.Params("jobCode")
	if jobCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job code is required",
		})
	}

	var opts services.MatchOptions
	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold < 1 || threshold > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "threshold must be an integer between 1 and 100",
			})
		}
		opts.Threshold = threshold
	}

	result, err := h.matcher.RunMatch(c.UserContext(), jobCode, opts)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}

		h.logger.Error("match run failed", zap.String("job_code", jobCode), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to run match",
		})
	}

	return c.JSON(models.MatchResponse{
		JobCode: result.JobCode,
		Count:   result.Count,
		Results: result.Entries,
		Message: result.Message,
	})
}

// HandleGetShortlist handles GET /shortlists/:jobCode
func (h *MatchHandler) HandleGetShortlist(c *fiber.Ctx) error {
	entries, err := h.shortlistRepo.FindByJobCode(c.UserContext(), c.Params("jobCode"))
	if err != nil {
		h.logger.Error("failed to fetch shortlist", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch shortlist data",
		})
	}

	return c.JSON(entries)
}

// HandleCreateShortlist handles POST /shortlists. It records a shortlist
// decision made outside a match run; the shortlist flag is stored as sent.
func (h *MatchHandler) HandleCreateShortlist(c *fiber.Ctx) error {
	var req models.CreateShortlistRequest

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

	if req.Score < 0 || req.Score > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "score must be between 0 and 100",
		})
	}

	entry := &models.Shortlist{
		ID:              uuid.New(),
		CandidateName:   valueOrNA(req.CandidateName),
		Email:           valueOrNA(req.Email),
		JobCode:         req.JobCode,
		Score:           req.Score,
		MatchedSkills:   nonNil(req.MatchedSkills),
		MissingSkills:   nonNil(req.MissingSkills),
		Summary:         req.Summary,
		Shortlist:       req.Shortlist,
		DateShortlisted: time.Now().UTC(),
	}

	if raw := strings.TrimSpace(req.ResumeID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume ID format",
			})
		}
		entry.ResumeID = &id
	}

	if err := h.shortlistRepo.Create(c.UserContext(), entry); err != nil {
		h.logger.Error("failed to save shortlist entry", zap.String("job_code", entry.JobCode), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save shortlist",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Shortlist saved",
		"data":    entry,
	})
}

func valueOrNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return models.NotAvailable
	}
	return s
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
