package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Job struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobCode            string         `gorm:"type:text;uniqueIndex;not null" json:"job_code"`
	Title              string         `gorm:"type:text" json:"title"`
	Description        string         `gorm:"type:text" json:"description"`
	RequiredSkills     pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	ExperienceRequired string         `gorm:"type:text" json:"experience_required"`
	Qualifications     pq.StringArray `gorm:"type:text[]" json:"qualifications"`
	Responsibilities   pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	CreatedAt          time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Job) TableName() string {
	return "jobs"
}
