package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"rera-scraper/browser"
	"rera-scraper/config"
	"rera-scraper/models"
	"rera-scraper/scraper/rera"
	"rera-scraper/services"
	"rera-scraper/storage"
	"rera-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger().WithLevel(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	results := run(ctx, cfg, logger)
	stop()

	if len(results) == 0 {
		fmt.Printf("\n  No results obtained. Check your internet connection and try again.\n\n")
		os.Exit(1)
	}

	summary := services.NewSummaryService(logger).Generate(results)
	fmt.Printf("\n  Final validation: %d projects processed\n", summary.TotalProjects)
	fmt.Printf("   %d projects have RERA No. and Project Name\n", summary.CompleteProjects)
	fmt.Printf("   %d projects have GST Numbers\n\n", summary.ProjectsWithGST)
}

// run scrapes, reports and saves one batch of projects. It returns no
// records when the scrape itself failed.
func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) []models.ProjectRecord {
	runID := uuid.NewString()

	logger.Info("=== Odisha RERA Scraper starting (run %s) ===", runID)
	logger.Info("Config — listing: %s | headless: %v | retries: %d | output: %s",
		cfg.ListingURL, cfg.Headless, cfg.MaxRetries, cfg.OutputPath("{csv,json,html}"))

	session, err := browser.NewSession(cfg, logger)
	if err != nil {
		logger.Error("Critical error: %v", err)
		return nil
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("Browser cleanup failed: %v", err)
		}
	}()

	records, err := rera.New(cfg, session, logger).Scrape(ctx)
	if err != nil {
		logger.Error("Critical error: %v", err)
		return nil
	}

	records = services.NewCleaner(logger).Clean(records)

	summarySvc := services.NewSummaryService(logger)
	summary := summarySvc.Generate(records)
	summarySvc.Print(records, summary)

	var saver storage.RecordSaver = storage.NewExporter(cfg.OutputDir, cfg.OutputBasename, logger)
	paths, err := saver.Save(records)
	switch {
	case errors.Is(err, storage.ErrNoRecords):
		logger.Error("No data to save!")
	case err != nil:
		logger.Error("Saving results failed: %v", err)
	default:
		logger.Info("Files saved: %v", paths)
	}

	if cfg.PostgresEnabled {
		persist(cfg, logger, runID, records)
	}

	logger.Info("Scraping completed: %d of %d projects extracted, %d with GST numbers",
		summary.ValidProjects, summary.TotalProjects, summary.ProjectsWithGST)
	return records
}

func persist(cfg *config.Config, logger *utils.Logger, runID string, records []models.ProjectRecord) {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		return
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(runID, records); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return
	}

	stored, err := pgWriter.FetchRun(runID)
	if err != nil {
		logger.Error("Failed to read run %s back from PostgreSQL: %v", runID, err)
		return
	}
	logger.Info("Stored %d records in PostgreSQL (table: rera_projects, run %s)", len(stored), runID)
}
