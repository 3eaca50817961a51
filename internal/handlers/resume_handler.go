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
	"alfredoptarigan/resume-matcher/internal/services"
)

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	logger         *zap.Logger
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	log *zap.Logger,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		logger:         logger.OrNop(log),
	}
}

// HandleUpload handles POST /resumes (multipart: job_code, file)
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	jobCode := strings.TrimSpace(c.FormValue("job_code"))
	if jobCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_code is required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing file data",
		})
	}

	data, err := h.storageService.ReadUpload(file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUpload) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("failed to read upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	resume := &models.Resume{
		ID:          uuid.New(),
		JobCode:     jobCode,
		Filename:    file.Filename,
		ContentType: "application/pdf",
		FileData:    data,
		UploadedAt:  time.Now(),
	}

	if err := h.resumeRepo.Create(c.UserContext(), resume); err != nil {
		h.logger.Error("failed to save resume", zap.String("job_code", jobCode), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:       resume.ID.String(),
		JobCode:  resume.JobCode,
		Filename: resume.Filename,
		Size:     len(data),
	})
}

// HandleList handles GET /resumes?code=JOBCODE. File payloads are not returned.
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code query parameter is required",
		})
	}

	resumes, err := h.resumeRepo.ListByJobCode(c.UserContext(), code)
	if err != nil {
		h.logger.Error("failed to list resumes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	return c.JSON(resumes)
}
