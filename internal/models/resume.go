package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobCode     string    `gorm:"type:text;index;not null" json:"job_code"`
	Filename    string    `gorm:"type:text" json:"filename"`
	ContentType string    `gorm:"type:text" json:"content_type"`
	FileData    []byte    `gorm:"type:bytea" json:"-"`
	UploadedAt  time.Time `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
}

func (Resume) TableName() string {
	return "resumes"
}

// HasFile reports whether the stored record carries a file payload.
func (r *Resume) HasFile() bool {
	return len(r.FileData) > 0
}
