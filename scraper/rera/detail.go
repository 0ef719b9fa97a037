package rera

import (
	"context"

	"rera-scraper/browser"
	"rera-scraper/extractor"
	"rera-scraper/models"
)

// openDetails clicks the card's details link, reads the detail page and
// returns to the listing. Failures after the record was seeded from the card
// are logged and the partial record returned; only a stale card reference is
// reported back so the caller can retry against a fresh listing.
func (s *Scraper) openDetails(ctx context.Context, info models.CardInfo) (models.ProjectRecord, error) {
	url, _ := s.browser.CurrentURL(ctx)
	record := models.ProjectRecord{
		ProjectURL:   url,
		RERANumber:   info.RERANumber,
		ProjectName:  info.ProjectName,
		PromoterName: info.PromoterName,
	}

	if !info.HasDetails {
		s.logger.Warn("No View Details button found")
		return record, nil
	}

	button := browser.Target{
		Container: extractor.CardSelector,
		Index:     info.Index,
		XPath:     extractor.DetailsLinkXPath,
	}

	s.logger.Info("Clicking View Details button...")
	if err := s.browser.ScrollIntoView(ctx, button); err != nil {
		return s.clickFailed(record, err)
	}
	s.settle(ctx, s.cfg.ClickSettle)
	if err := s.browser.Click(ctx, button); err != nil {
		return s.clickFailed(record, err)
	}

	if err := s.browser.WaitPresent(ctx, extractor.HeadingSelector); err != nil {
		s.logger.Error("Error clicking View Details: %v", err)
		return record, nil
	}
	s.settle(ctx, s.cfg.DetailSettle)

	if detailURL, err := s.browser.CurrentURL(ctx); err == nil {
		record.ProjectURL = detailURL
		if n := s.visited.Record(detailURL); n > 1 {
			s.logger.Warn("Detail page %s opened %d times in this run", detailURL, n)
		}
	}

	record.Merge(s.extractDetails(ctx))

	if err := s.returnToListing(ctx); err != nil {
		s.logger.Error("Error returning to listing: %v", err)
	}
	return record, nil
}

func (s *Scraper) clickFailed(record models.ProjectRecord, err error) (models.ProjectRecord, error) {
	if models.IsStale(err) {
		return record, err
	}
	s.logger.Error("Error clicking View Details: %v", err)
	return record, nil
}

func (s *Scraper) returnToListing(ctx context.Context) error {
	if err := s.browser.Back(ctx); err != nil {
		return err
	}
	if err := s.browser.WaitPresent(ctx, extractor.CardSelector); err != nil {
		return err
	}
	s.settle(ctx, s.cfg.DetailSettle)
	return nil
}

// extractDetails reads the detail page currently shown. RERA number,
// promoter-tab activation and GST number are retried with a fixed delay
// because the portal fills them in after the page has loaded.
func (s *Scraper) extractDetails(ctx context.Context) models.DetailInfo {
	d := models.NewDetailInfo()

	if scope, err := s.snapshot(ctx); err != nil {
		s.logger.Error("Error reading detail page: %v", err)
	} else if name, ok := extractor.DetailProjectName(scope); ok {
		d.ProjectName = name
	}

	err := s.retry.Do(ctx, "detail-rera", func(int) error {
		scope, err := s.snapshot(ctx)
		if err != nil {
			return err
		}
		s.logger.Debug("Searching page source for RERA: %s", d.ProjectName)
		v, ok := extractor.DetailRERA(scope)
		if !ok {
			return models.ErrExtractionEmpty
		}
		d.RERANumber = v
		return nil
	})
	if err != nil {
		s.logger.Warn("RERA number not found on detail page: %v", err)
	}

	if err := s.retry.Do(ctx, "promoter-tab", func(int) error { return s.openPromoterTab(ctx) }); err != nil {
		s.logger.Warn("Promoter Details tab not found or not clickable: %v", err)
	} else {
		s.logger.Info("Clicked Promoter Details tab")
	}

	if scope, err := s.snapshot(ctx); err != nil {
		s.logger.Error("Error reading promoter details: %v", err)
	} else {
		if v, ok := extractor.DetailPromoterName(scope); ok {
			d.PromoterName = v
		}
		if v, ok := extractor.DetailPromoterAddress(scope); ok {
			d.PromoterAddress = v
		}
	}

	err = s.retry.Do(ctx, "detail-gst", func(int) error {
		scope, err := s.snapshot(ctx)
		if err != nil {
			return err
		}
		if section, ok := scope.First(extractor.PromoterSectionSelector); ok {
			s.logger.Debug("Promoter section text for GST: %s...", truncate(extractor.InnerText(section), 200))
		}
		v, ok := extractor.DetailGST(scope)
		if !ok {
			return models.ErrExtractionEmpty
		}
		d.GSTNumber = v
		return nil
	})
	if err != nil {
		s.logger.Warn("GST number not found: %v", err)
	}

	return d
}

func (s *Scraper) openPromoterTab(ctx context.Context) error {
	tab := browser.Target{XPath: extractor.PromoterTabXPath}

	if err := s.browser.WaitVisibleXPath(ctx, tab.XPath); err != nil {
		return err
	}
	if err := s.browser.ScrollIntoView(ctx, tab); err != nil {
		return err
	}
	s.settle(ctx, s.cfg.ClickSettle)
	if err := s.browser.Click(ctx, tab); err != nil {
		return err
	}
	s.settle(ctx, s.cfg.TabSettle)

	return s.browser.WaitPresent(ctx, extractor.PromoterSectionSelector)
}

func (s *Scraper) snapshot(ctx context.Context) (*extractor.Scope, error) {
	src, err := s.browser.PageSource(ctx)
	if err != nil {
		return nil, err
	}
	return extractor.Parse(src)
}
