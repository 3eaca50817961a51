package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FailedCandidateName marks entries written when a resume could not be processed.
const FailedCandidateName = "Processing Failed"

type Shortlist struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName   string         `gorm:"type:text" json:"candidate_name"`
	Email           string         `gorm:"type:text;default:'N/A'" json:"email"`
	ResumeID        *uuid.UUID     `gorm:"type:uuid" json:"resume_id,omitempty"`
	JobCode         string         `gorm:"type:text;index;not null" json:"job_code"`
	Score           int            `gorm:"not null;default:0" json:"score"`
	MatchedSkills   pq.StringArray `gorm:"type:text[]" json:"matched_skills"`
	MissingSkills   pq.StringArray `gorm:"type:text[]" json:"missing_skills"`
	Summary         string         `gorm:"type:text" json:"summary"`
	Shortlist       bool           `gorm:"not null;default:false" json:"shortlist"`
	DateShortlisted time.Time      `gorm:"type:timestamp" json:"date_shortlisted"`
}

func (Shortlist) TableName() string {
	return "shortlists"
}
