package models

// NotAvailable is the placeholder rendered for any missing candidate or job field.
const NotAvailable = "N/A"

// ContactInfo holds either the structured email/phone pair or, when the model
// returned an irregular shape, the raw value as Unstructured.
type ContactInfo struct {
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Unstructured string `json:"unstructured,omitempty"`
}

type Education struct {
	Degree        string `json:"degree"`
	FieldsOfStudy string `json:"fields_of_study"`
	YearsAttended string `json:"years_attended"`
	// Raw is set when the entry was not an object.
	Raw string `json:"raw,omitempty"`
}

type WorkExperience struct {
	Position     string `json:"position"`
	Company      string `json:"company"`
	YearsWorked  string `json:"years_worked"`
	Achievements string `json:"achievements"`
	Raw          string `json:"raw,omitempty"`
}

// StructuredCandidate is the normalized content of one resume. It lives for a
// single pipeline run and is never persisted.
type StructuredCandidate struct {
	FullName       string           `json:"full_name"`
	Contact        ContactInfo      `json:"contact"`
	Skills         []string         `json:"skills"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Certifications []string         `json:"certifications"`
	RawText        string           `json:"-"`
}

// DefaultCandidate returns a candidate with every field set to its default.
func DefaultCandidate(rawText string) *StructuredCandidate {
	return &StructuredCandidate{
		FullName: NotAvailable,
		Contact: ContactInfo{
			Email: NotAvailable,
			Phone: NotAvailable,
		},
		Skills:         []string{},
		Education:      []Education{},
		WorkExperience: []WorkExperience{},
		Certifications: []string{},
		RawText:        rawText,
	}
}

// MatchVerdict is the outcome of scoring one candidate against one job.
type MatchVerdict struct {
	MatchScore    int      `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Summary       string   `json:"summary"`
	Shortlist     bool     `json:"shortlist"`
}
