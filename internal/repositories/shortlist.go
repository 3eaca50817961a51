package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

type ShortlistRepository interface {
	Create(ctx context.Context, entry *models.Shortlist) error
	FindByJobCode(ctx context.Context, jobCode string) ([]models.Shortlist, error)
}

type shortlistRepository struct {
	db *gorm.DB
}

func NewShortlistRepository(db *gorm.DB) ShortlistRepository {
	return &shortlistRepository{db: db}
}

// Create implements ShortlistRepository. Entries are insert-only.
func (r *shortlistRepository) Create(ctx context.Context, entry *models.Shortlist) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create shortlist entry: %w", err)
	}
	return nil
}

// FindByJobCode implements ShortlistRepository.
func (r *shortlistRepository) FindByJobCode(ctx context.Context, jobCode string) ([]models.Shortlist, error) {
	var entries []models.Shortlist
	err := r.db.WithContext(ctx).
		Where("job_code = ?", jobCode).
		Order("date_shortlisted DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find shortlist entries: %w", err)
	}
	return entries, nil
}
