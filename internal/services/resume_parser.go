package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

var resumeParseParams = GenerationParams{Temperature: 0.3, MaxOutputTokens: 2000}

// ResumeParseResult always carries a usable candidate. Err is set when the
// candidate was degraded to defaults, and says why.
type ResumeParseResult struct {
	Candidate *models.StructuredCandidate
	Err       error
}

// Degraded reports whether the candidate holds defaults instead of parsed data.
func (r ResumeParseResult) Degraded() bool {
	return r.Err != nil
}

type ResumeParserService interface {
	ParseResume(ctx context.Context, data []byte) ResumeParseResult
}

type resumeParserService struct {
	pdfParser     PDFParserService
	provider      ModelProvider
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	maxLogLen     int
}

func NewResumeParserService(pdfParser PDFParserService, provider ModelProvider, log *zap.Logger) ResumeParserService {
	return &resumeParserService{
		pdfParser:     pdfParser,
		provider:      provider,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
		maxLogLen:     200,
	}
}

// ParseResume implements ResumeParserService.
func (s *resumeParserService) ParseResume(ctx context.Context, data []byte) ResumeParseResult {
	text, err := s.pdfParser.ExtractText(data)
	if err != nil {
		s.logger.Warn("resume text extraction failed", zap.Error(err))
		return ResumeParseResult{Candidate: models.DefaultCandidate(text), Err: err}
	}

	if s.provider == nil {
		err := fmt.Errorf("%w: no model provider for resume parsing", ErrConfiguration)
		return ResumeParseResult{Candidate: models.DefaultCandidate(text), Err: err}
	}

	prompt := s.promptBuilder.BuildResumeParsePrompt(text)
	s.logger.Debug("resume parse request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := s.provider.Complete(ctx, prompt, resumeParseParams)
	if err != nil {
		s.logger.Warn("resume parse model call failed", zap.Error(err))
		return ResumeParseResult{Candidate: models.DefaultCandidate(text), Err: err}
	}

	s.logger.Debug("resume parse response",
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		s.logger.Warn("resume parse response unusable", zap.Error(err))
		return ResumeParseResult{Candidate: models.DefaultCandidate(text), Err: err}
	}

	return ResumeParseResult{Candidate: candidateFromObject(obj, text)}
}

// candidateFromObject maps the model's JSON onto a candidate, filling defaults
// for anything missing or oddly shaped.
func candidateFromObject(obj map[string]any, rawText string) *models.StructuredCandidate {
	c := models.DefaultCandidate(rawText)
	c.FullName = stringOr(obj["Full Name"], models.NotAvailable)

	switch contact := obj["Contact Information"].(type) {
	case map[string]any:
		c.Contact.Email = stringOr(contact["email"], models.NotAvailable)
		c.Contact.Phone = stringOr(contact["phone"], models.NotAvailable)
	case nil:
	default:
		if s := coerceString(contact); s != "" {
			c.Contact = models.ContactInfo{Unstructured: s}
		}
	}

	c.Skills = coerceStringSlice(obj["Skills"])
	c.Certifications = coerceStringSlice(obj["Certifications"])

	if items, ok := obj["Education"].([]any); ok {
		for _, item := range items {
			if entry, ok := item.(map[string]any); ok {
				c.Education = append(c.Education, models.Education{
					Degree:        stringOr(entry["Degree"], models.NotAvailable),
					FieldsOfStudy: stringOr(entry["Fields of Study"], models.NotAvailable),
					YearsAttended: stringOr(entry["Years Attended"], models.NotAvailable),
				})
			} else if s := coerceString(item); s != "" {
				c.Education = append(c.Education, models.Education{Raw: s})
			}
		}
	}

	if items, ok := obj["Work Experience"].([]any); ok {
		for _, item := range items {
			if entry, ok := item.(map[string]any); ok {
				c.WorkExperience = append(c.WorkExperience, models.WorkExperience{
					Position:     stringOr(entry["Position"], models.NotAvailable),
					Company:      stringOr(entry["Company Name"], models.NotAvailable),
					YearsWorked:  stringOr(entry["Years Worked"], models.NotAvailable),
					Achievements: stringOr(entry["Achievements"], models.NotAvailable),
				})
			} else if s := coerceString(item); s != "" {
				c.WorkExperience = append(c.WorkExperience, models.WorkExperience{Raw: s})
			}
		}
	}

	return c
}
