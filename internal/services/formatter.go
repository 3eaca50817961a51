package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

// Render bounds for candidate sections.
const (
	maxRenderedSkills         = 10
	maxRenderedEducation      = 3
	maxRenderedWorkExperience = 5
	maxRenderedCertifications = 5
)

// FormatJobDescription renders a job as the labeled text block embedded in the
// scoring prompt. Missing scalar fields render as N/A, missing lists as an
// empty join.
func FormatJobDescription(job *models.Job) string {
	if job == nil {
		job = &models.Job{}
	}

	lines := []string{
		"Job Title: " + orNA(job.Title),
		"Required Skills: " + strings.Join(job.RequiredSkills, ", "),
		"Experience Required: " + orNA(job.ExperienceRequired),
		"Qualifications: " + strings.Join(job.Qualifications, ", "),
		"Responsibilities: " + strings.Join(job.Responsibilities, ", "),
	}

	return strings.Join(lines, "\n")
}

// FormatCandidate renders a structured candidate for the scoring prompt.
// Empty sections are omitted and long sections are cut to their render bound.
func FormatCandidate(c *models.StructuredCandidate) string {
	if c == nil {
		c = models.DefaultCandidate("")
	}

	lines := []string{"Name: " + orNA(c.FullName)}

	if c.Contact.Unstructured != "" {
		lines = append(lines, "Contact: "+c.Contact.Unstructured)
	} else {
		lines = append(lines,
			"Email: "+orNA(c.Contact.Email),
			"Phone: "+orNA(c.Contact.Phone),
		)
	}

	if len(c.Skills) > 0 {
		lines = append(lines, "Skills:")
		for _, skill := range firstN(c.Skills, maxRenderedSkills) {
			lines = append(lines, "- "+skill)
		}
	}

	if len(c.Education) > 0 {
		lines = append(lines, "Education:")
		for _, edu := range firstN(c.Education, maxRenderedEducation) {
			if edu.Raw != "" {
				lines = append(lines, "- "+edu.Raw)
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s in %s (%s)",
				orNA(edu.Degree), orNA(edu.FieldsOfStudy), orNA(edu.YearsAttended)))
		}
	}

	if len(c.WorkExperience) > 0 {
		lines = append(lines, "Work Experience:")
		for _, exp := range firstN(c.WorkExperience, maxRenderedWorkExperience) {
			if exp.Raw != "" {
				lines = append(lines, "- "+exp.Raw)
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s at %s (%s): %s",
				orNA(exp.Position), orNA(exp.Company), orNA(exp.YearsWorked), orNA(exp.Achievements)))
		}
	}

	if len(c.Certifications) > 0 {
		lines = append(lines, "Certifications:")
		for _, cert := range firstN(c.Certifications, maxRenderedCertifications) {
			lines = append(lines, "- "+cert)
		}
	}

	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotAvailable
	}
	return s
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
