package rera

import (
	"context"

	"rera-scraper/extractor"
)

// findProjectCards loads the listing page and returns the outer HTML of up to
// six project cards. Load failures and timeouts yield no cards; the caller
// fills blank records instead of failing the run.
func (s *Scraper) findProjectCards(ctx context.Context) []string {
	if err := s.browser.Navigate(ctx, s.cfg.ListingURL); err != nil {
		s.logger.Error("Error loading %s: %v", s.cfg.ListingURL, err)
		return nil
	}
	if err := s.browser.WaitPresent(ctx, "body"); err != nil {
		s.logger.Error("Error loading %s: %v", s.cfg.ListingURL, err)
		return nil
	}
	s.settle(ctx, s.cfg.LoadSettle)

	if err := s.browser.WaitPresent(ctx, extractor.CardSelector); err != nil {
		s.logger.Warn("No project cards found with %s: %v", extractor.CardSelector, err)
		return nil
	}

	cards, err := s.browser.OuterHTMLAll(ctx, extractor.CardSelector)
	if err != nil {
		s.logger.Warn("Could not read project cards: %v", err)
		return nil
	}
	s.logger.Info("Found %d cards using selector: %s", len(cards), extractor.CardSelector)

	if len(cards) > topProjects {
		cards = cards[:topProjects]
	}
	return cards
}
