package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	// FindByJobCode returns every resume of a job including the file payload,
	// in store order.
	FindByJobCode(ctx context.Context, jobCode string) ([]models.Resume, error)
	// ListByJobCode is FindByJobCode without the file payload.
	ListByJobCode(ctx context.Context, jobCode string) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByJobCode implements ResumeRepository.
func (r *resumeRepository) FindByJobCode(ctx context.Context, jobCode string) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.WithContext(ctx).Where("job_code = ?", jobCode).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}
	return resumes, nil
}

// ListByJobCode implements ResumeRepository.
func (r *resumeRepository) ListByJobCode(ctx context.Context, jobCode string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.WithContext(ctx).
		Omit("file_data").
		Where("job_code = ?", jobCode).
		Order("uploaded_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}
