package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	DefaultMatchThreshold = 60
	missingSummary        = "Could not generate summary."
)

var scoreParams = GenerationParams{Temperature: 0.3, MaxOutputTokens: 1000}

// ScoreResult always carries a usable verdict. Err is set when scoring failed
// and the verdict is the zero-score fallback.
type ScoreResult struct {
	Verdict *models.MatchVerdict
	Err     error
}

func (r ScoreResult) Failed() bool {
	return r.Err != nil
}

type ScorerService interface {
	Score(ctx context.Context, jobText, candidateText string, threshold int) ScoreResult
}

type scorerService struct {
	provider      ModelProvider
	promptBuilder *PromptBuilder
	logger        *zap.Logger
	maxLogLen     int
}

func NewScorerService(provider ModelProvider, log *zap.Logger) ScorerService {
	return &scorerService{
		provider:      provider,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
		maxLogLen:     200,
	}
}

// Score implements ScorerService. The shortlist flag is always recomputed as
// score >= threshold; whatever the model said about it is ignored. A
// non-positive threshold means DefaultMatchThreshold.
func (s *scorerService) Score(ctx context.Context, jobText, candidateText string, threshold int) ScoreResult {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	if s.provider == nil {
		return failedScore(fmt.Errorf("%w: no model provider for scoring", ErrConfiguration))
	}

	prompt := s.promptBuilder.BuildMatchPrompt(jobText, candidateText)

	raw, err := s.provider.Complete(ctx, prompt, scoreParams)
	if err != nil {
		s.logger.Warn("match model call failed", zap.Error(err))
		return failedScore(err)
	}

	s.logger.Debug("match response",
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		s.logger.Warn("match response unusable", zap.Error(err))
		return failedScore(err)
	}

	verdict := verdictFromObject(obj, threshold)

	if claimed, ok := obj["shortlist"].(bool); ok && claimed != verdict.Shortlist {
		s.logger.Debug("model shortlist overridden by threshold",
			zap.Bool("model_shortlist", claimed),
			zap.Int("score", verdict.MatchScore),
			zap.Int("threshold", threshold),
		)
	}

	return ScoreResult{Verdict: verdict}
}

func verdictFromObject(obj map[string]any, threshold int) *models.MatchVerdict {
	score := coerceScore(obj["match_score"])
	return &models.MatchVerdict{
		MatchScore:    score,
		MatchedSkills: coerceStringSlice(obj["matched_skills"]),
		MissingSkills: coerceStringSlice(obj["missing_skills"]),
		Summary:       stringOr(obj["summary"], missingSummary),
		Shortlist:     score >= threshold,
	}
}

func failedScore(err error) ScoreResult {
	return ScoreResult{
		Verdict: &models.MatchVerdict{
			MatchScore:    0,
			MatchedSkills: []string{},
			MissingSkills: []string{},
			Summary:       fmt.Sprintf("Could not parse result due to an error: %v", err),
			Shortlist:     false,
		},
		Err: err,
	}
}
