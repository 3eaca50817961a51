package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

const noResumesMessage = "No resumes found for this job code."

type JobFinder interface {
	FindByCode(ctx context.Context, jobCode string) (*models.Job, error)
}

type ResumeFinder interface {
	FindByJobCode(ctx context.Context, jobCode string) ([]models.Resume, error)
}

type ShortlistWriter interface {
	Create(ctx context.Context, entry *models.Shortlist) error
}

type MatchOptions struct {
	// Threshold overrides the configured shortlist threshold when positive.
	Threshold int
}

type MatchResult struct {
	JobCode string
	Entries []models.Shortlist
	Count   int
	Message string
}

type MatcherService interface {
	RunMatch(ctx context.Context, jobCode string, opts MatchOptions) (*MatchResult, error)
}

type matcherService struct {
	jobs         JobFinder
	resumes      ResumeFinder
	shortlists   ShortlistWriter
	resumeParser ResumeParserService
	scorer       ScorerService
	threshold    int
	logger       *zap.Logger
	now          func() time.Time
}

func NewMatcherService(
	jobs JobFinder,
	resumes ResumeFinder,
	shortlists ShortlistWriter,
	resumeParser ResumeParserService,
	scorer ScorerService,
	threshold int,
	log *zap.Logger,
) MatcherService {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	return &matcherService{
		jobs:         jobs,
		resumes:      resumes,
		shortlists:   shortlists,
		resumeParser: resumeParser,
		scorer:       scorer,
		threshold:    threshold,
		logger:       logger.OrNop(log),
		now:          time.Now,
	}
}

// RunMatch scores every stored resume of a job and persists one shortlist entry
// per resume that has a file. Resumes are handled serially in store order and
// each entry is inserted as soon as it is built. A failing resume produces a
// sentinel entry instead of stopping the run. Runs are not idempotent.
//
// The returned error is ErrJobNotFound for an unknown job code, or a store
// error. On a store error during inserts the entries persisted so far are
// returned alongside it.
func (m *matcherService) RunMatch(ctx context.Context, jobCode string, opts MatchOptions) (*MatchResult, error) {
	log := m.logger.With(zap.String("job_code", jobCode))

	job, err := m.jobs.FindByCode(ctx, jobCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobCode)
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	resumes, err := m.resumes.FindByJobCode(ctx, jobCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load resumes: %w", err)
	}

	result := &MatchResult{JobCode: jobCode, Entries: []models.Shortlist{}}
	if len(resumes) == 0 {
		log.Info("no resumes to match")
		result.Message = noResumesMessage
		return result, nil
	}

	threshold := m.threshold
	if opts.Threshold > 0 {
		threshold = opts.Threshold
	}

	jobText := FormatJobDescription(job)
	log.Info("starting match run", zap.Int("resumes", len(resumes)), zap.Int("threshold", threshold))

	for i := range resumes {
		resume := &resumes[i]
		resumeLog := log.With(zap.String("resume_id", resume.ID.String()))

		if !resume.HasFile() {
			resumeLog.Warn("resume has no file data, skipping")
			continue
		}

		entry := m.processResume(ctx, resumeLog, jobCode, jobText, resume, threshold)

		if err := m.shortlists.Create(ctx, entry); err != nil {
			result.Count = len(result.Entries)
			return result, fmt.Errorf("failed to persist shortlist entry: %w", err)
		}

		resumeLog.Info("resume matched",
			zap.String("candidate", entry.CandidateName),
			zap.Int("score", entry.Score),
			zap.Bool("shortlist", entry.Shortlist),
		)
		result.Entries = append(result.Entries, *entry)
	}

	result.Count = len(result.Entries)
	log.Info("match run completed", zap.Int("entries", result.Count))

	return result, nil
}

// processResume structures and scores one resume. It never fails: scoring
// failures and panics become a sentinel entry.
func (m *matcherService) processResume(
	ctx context.Context,
	log *zap.Logger,
	jobCode, jobText string,
	resume *models.Resume,
	threshold int,
) (entry *models.Shortlist) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("resume processing panicked", zap.Any("panic", r))
			entry = m.failedEntry(jobCode, resume, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	parsed := m.resumeParser.ParseResume(ctx, resume.FileData)
	if parsed.Degraded() {
		log.Warn("resume structured with defaults", zap.Error(parsed.Err))
	}

	scored := m.scorer.Score(ctx, jobText, FormatCandidate(parsed.Candidate), threshold)
	if scored.Failed() {
		log.Warn("resume scoring failed", zap.Error(scored.Err))
		return m.failedEntry(jobCode, resume, scored.Err)
	}

	candidate := parsed.Candidate
	verdict := scored.Verdict

	return &models.Shortlist{
		CandidateName:   orNA(candidate.FullName),
		Email:           orNA(candidate.Contact.Email),
		ResumeID:        resumeID(resume),
		JobCode:         jobCode,
		Score:           verdict.MatchScore,
		MatchedSkills:   verdict.MatchedSkills,
		MissingSkills:   verdict.MissingSkills,
		Summary:         verdict.Summary,
		Shortlist:       verdict.Shortlist,
		DateShortlisted: m.now().UTC(),
	}
}

func (m *matcherService) failedEntry(jobCode string, resume *models.Resume, cause error) *models.Shortlist {
	return &models.Shortlist{
		CandidateName:   models.FailedCandidateName,
		Email:           models.NotAvailable,
		ResumeID:        resumeID(resume),
		JobCode:         jobCode,
		Score:           0,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		Summary:         fmt.Sprintf("Processing failed: %v", cause),
		Shortlist:       false,
		DateShortlisted: m.now().UTC(),
	}
}

func resumeID(resume *models.Resume) *uuid.UUID {
	id := resume.ID
	return &id
}
