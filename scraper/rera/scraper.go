// Package rera scrapes the top project registrations from the Odisha RERA portal.
package rera

import (
	"context"
	"fmt"
	"time"

	"rera-scraper/browser"
	"rera-scraper/config"
	"rera-scraper/extractor"
	"rera-scraper/models"
	"rera-scraper/utils"
)

// topProjects is positional: the first cards on the listing, not a ranking.
const topProjects = 6

// Browser is the part of the browser session the scraper drives.
// *browser.Session satisfies it.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	WaitPresent(ctx context.Context, selector string) error
	WaitVisibleXPath(ctx context.Context, xpath string) error
	OuterHTMLAll(ctx context.Context, selector string) ([]string, error)
	PageSource(ctx context.Context) (string, error)
	CurrentURL(ctx context.Context) (string, error)
	ScrollIntoView(ctx context.Context, t browser.Target) error
	Click(ctx context.Context, t browser.Target) error
	Back(ctx context.Context) error
}

// Scraper walks the listing and fills one record per top position.
type Scraper struct {
	cfg        *config.Config
	browser    Browser
	logger     *utils.Logger
	retry      *utils.RetryConfig
	staleRetry *utils.RetryConfig
	visited    *utils.VisitLog
}

// New creates a ready-to-use RERA Scraper driving b.
func New(cfg *config.Config, b Browser, logger *utils.Logger) *Scraper {
	logger = logger.With("rera")
	return &Scraper{
		cfg:     cfg,
		browser: b,
		logger:  logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			Delay:       cfg.RetryDelay,
			Logger:      logger,
		},
		staleRetry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			Delay:       cfg.StaleRetryDelay,
			Logger:      logger,
			Retryable:   models.IsStale,
		},
		visited: utils.NewVisitLog(),
	}
}

// Scrape processes listing positions 1 through 6 and always returns exactly
// six records when it returns no error. Positions that fail yield blank
// records. A panic inside the run is turned into an error.
func (s *Scraper) Scrape(ctx context.Context) (records []models.ProjectRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("rera: scrape aborted: %v", r)
		}
	}()

	s.logger.Info("Starting Odisha RERA top %d projects scrape: %s", topProjects, s.cfg.ListingURL)

	records = make([]models.ProjectRecord, 0, topProjects)
	for pos := 1; pos <= topProjects; pos++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rera: scrape interrupted at project %d: %w", pos, err)
		}
		s.logger.Info("Processing project %d/%d", pos, topProjects)
		records = append(records, s.scrapePosition(ctx, pos))
	}

	s.logger.Info("Scrape complete: %d records, %d distinct detail pages, %d repeat visits",
		len(records), s.visited.Distinct(), s.visited.Repeats())
	return records, nil
}

// scrapePosition returns the record for 1-based listing position pos.
// Stale card references are retried against a freshly loaded listing.
func (s *Scraper) scrapePosition(ctx context.Context, pos int) models.ProjectRecord {
	cards := s.findProjectCards(ctx)
	if len(cards) < pos {
		s.logger.Warn("Insufficient project cards found (%d) for project %d", len(cards), pos)
		return s.blank(ctx)
	}

	var record *models.ProjectRecord
	err := s.staleRetry.Do(ctx, fmt.Sprintf("project-%d", pos), func(attempt int) error {
		if attempt > 1 {
			cards = s.findProjectCards(ctx)
			if len(cards) < pos {
				return &models.ScrapeError{Op: "relocate card", Position: pos, Err: models.ErrElementNotFound}
			}
		}

		rec, err := s.scrapeCard(ctx, cards[pos-1], pos-1)
		if err != nil {
			return err
		}
		record = &rec
		return nil
	})
	if err != nil {
		s.logger.Error("Error processing project %d: %v", pos, err)
	}
	if record == nil {
		return s.blank(ctx)
	}

	if record.HasIdentity() {
		s.logger.Info("Success: %s - %s", record.ProjectName, record.RERANumber)
		if record.HasGST() {
			s.logger.Info("   GST No: %s", record.GSTNumber)
		}
	} else {
		s.logger.Warn("Limited data extracted for project %d", pos)
	}
	return *record
}

// scrapeCard reads the card snapshot and follows its details link.
func (s *Scraper) scrapeCard(ctx context.Context, markup string, index int) (models.ProjectRecord, error) {
	scope, err := extractor.ParseCard(markup)
	if err != nil {
		return models.ProjectRecord{}, err
	}
	s.logger.Debug("Card text for RERA: %s...", truncate(scope.Text(), 200))

	info := extractor.ExtractCard(scope, index)
	s.logger.Info("   Project: %s", info.ProjectName)
	s.logger.Info("   RERA: %s", info.RERANumber)
	s.logger.Info("   Promoter: %s", info.PromoterName)

	return s.openDetails(ctx, info)
}

func (s *Scraper) blank(ctx context.Context) models.ProjectRecord {
	url, err := s.browser.CurrentURL(ctx)
	if err != nil {
		s.logger.Debug("Could not read current URL for blank record: %v", err)
	}
	return models.BlankRecord(url)
}

// settle is an unconditional pause for the portal's asynchronous rendering.
func (s *Scraper) settle(ctx context.Context, d time.Duration) {
	_ = utils.Sleep(ctx, d)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
