package models

type CreateJobRequest struct {
	JobCode            string   `json:"job_code"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired string   `json:"experience_required"`
	Qualifications     []string `json:"qualifications"`
	Responsibilities   []string `json:"responsibilities"`
}

type UploadResponse struct {
	ID       string `json:"id"`
	JobCode  string `json:"job_code"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

type MatchResponse struct {
	JobCode string      `json:"job_code"`
	Count   int         `json:"count"`
	Results []Shortlist `json:"results"`
	Message string      `json:"message,omitempty"`
}

// CreateShortlistRequest is a manually recorded shortlist decision.
type CreateShortlistRequest struct {
	CandidateName string   `json:"candidate_name"`
	Email         string   `json:"email"`
	ResumeID      string   `json:"resume_id"`
	JobCode       string   `json:"job_code"`
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Summary       string   `json:"summary"`
	Shortlist     bool     `json:"shortlist"`
}
