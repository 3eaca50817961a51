package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

var (
	jobCode string
	dir     string
)

func newRootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           "ingest-resumes",
		Short:         "Load every PDF in a directory as a resume of the given job code",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ingest(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&jobCode, "job-code", "", "job code the resumes belong to (required)")
	cmd.Flags().StringVar(&dir, "dir", "./resumes", "directory holding the PDF resumes")

	if err := cmd.MarkFlagRequired("job-code"); err != nil {
		return nil, fmt.Errorf("marking job-code flag required: %w", err)
	}

	return cmd, nil
}

func main() {
	cmd, err := newRootCmd()
	if err != nil {
		log.Fatalf("building command: %v", err)
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("ingest failed: %v", err)
		os.Exit(1)
	}
}

func ingest(ctx context.Context) error {
	cfg := config.Load()

	zlog, err := logger.New("ingest-resumes", cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg, zlog)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	pdfParser := services.NewPDFParserService()

	if _, err := jobRepo.FindByCode(ctx, jobCode); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			zlog.Warn("job code is not registered yet; resumes are stored anyway", zap.String("job_code", jobCode))
		} else {
			return err
		}
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	zlog.Info("starting resume ingestion", zap.String("job_code", jobCode), zap.Int("files", len(paths)))

	successCount := 0
	failCount := 0

	for _, path := range paths {
		fileLog := zlog.With(zap.String("file", filepath.Base(path)))

		data, err := os.ReadFile(path)
		if err != nil {
			fileLog.Error("failed to read file", zap.Error(err))
			failCount++
			continue
		}

		// Unreadable files are still stored; the match run degrades them.
		if content, err := pdfParser.ExtractTextWithMetaData(data); err != nil {
			fileLog.Warn("pdf text not extractable", zap.Error(err))
		} else {
			fileLog.Info("pdf text extracted", zap.Int("pages", content.PageCount), zap.Int("chars", len(content.Text)))
		}

		resume := &models.Resume{
			ID:          uuid.New(),
			JobCode:     jobCode,
			Filename:    filepath.Base(path),
			ContentType: "application/pdf",
			FileData:    data,
			UploadedAt:  time.Now(),
		}

		if err := resumeRepo.Create(ctx, resume); err != nil {
			fileLog.Error("failed to store resume", zap.Error(err))
			failCount++
			continue
		}

		successCount++
	}

	zlog.Info("ingestion summary", zap.Int("successful", successCount), zap.Int("failed", failCount))

	if failCount > 0 {
		return fmt.Errorf("%d resumes failed to ingest", failCount)
	}
	return nil
}
