package services

import (
	"fmt"
)

// maxResumePromptChars bounds how much extracted resume text is sent to the model.
const maxResumePromptChars = 4000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeParsePrompt creates the prompt that turns resume text into the
// structured candidate JSON.
func (pb *PromptBuilder) BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser AI. Extract information from the following resume text and respond with ONLY a valid JSON object.
ENSURE YOUR RESPONSE STARTS AND ENDS WITH THE JSON BRACES {...}.

Required JSON format:
{
    "Full Name": "string",
    "Contact Information": {
        "email": "string",
        "phone": "string"
    },
    "Skills": ["skill1", "skill2", "skill3"],
    "Education": [{
        "Degree": "string",
        "Fields of Study": "string",
        "Years Attended": "string"
    }],
    "Work Experience": [{
        "Position": "string",
        "Company Name": "string",
        "Years Worked": "string",
        "Achievements": "string"
    }],
    "Certifications": ["cert1", "cert2"]
}

Resume Text (limited to %d characters):
%s`, maxResumePromptChars, truncateRunes(resumeText, maxResumePromptChars))
}

// BuildMatchPrompt creates the prompt that scores a candidate against a job.
func (pb *PromptBuilder) BuildMatchPrompt(jobText, candidateText string) string {
	return fmt.Sprintf(`You are an AI recruitment assistant. Evaluate the candidate's resume against the job description.

Provide ONLY a valid JSON response with these exact keys:
{
    "match_score": <integer 0-100>,
    "matched_skills": ["skill1", "skill2"],
    "missing_skills": ["skill3", "skill4"],
    "summary": "Brief evaluation summary",
    "shortlist": <true or false>
}

Job Description:
%s

Candidate Resume:
%s`, jobText, candidateText)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
