package services

import (
	"strings"
	"unicode"

	"rera-scraper/extractor"
	"rera-scraper/models"
	"rera-scraper/utils"
)

// Cleaner normalises scraped records before they are reported and saved.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger.With("cleaner")}
}

// Clean returns a normalised copy of records, one per input record and in
// the same order. Every field has its whitespace collapsed line by line; RERA and GST
// values that are not exactly a registration or GST number are cleared.
func (c *Cleaner) Clean(records []models.ProjectRecord) []models.ProjectRecord {
	result := make([]models.ProjectRecord, 0, len(records))
	cleared := 0

	for i, r := range records {
		clean := models.ProjectRecord{
			ProjectURL:      strings.TrimSpace(r.ProjectURL),
			RERANumber:      normaliseText(r.RERANumber),
			ProjectName:     normaliseText(r.ProjectName),
			PromoterName:    normaliseText(r.PromoterName),
			PromoterAddress: normaliseText(r.PromoterAddress),
			GSTNumber:       normaliseText(r.GSTNumber),
		}

		if clean.RERANumber != "" && !extractor.ValidRERA(clean.RERANumber) {
			c.logger.Warn("Project %d: dropping malformed RERA number %q", i+1, clean.RERANumber)
			clean.RERANumber = ""
			cleared++
		}
		if clean.GSTNumber != "" && !extractor.ValidGST(clean.GSTNumber) {
			c.logger.Warn("Project %d: dropping malformed GST number %q", i+1, clean.GSTNumber)
			clean.GSTNumber = ""
			cleared++
		}

		result = append(result, clean)
	}

	c.logger.Info("Cleaned %d records (cleared %d malformed values)", len(result), cleared)
	return result
}

// normaliseText collapses whitespace within each line and drops blank lines.
// Line breaks between non-empty lines are kept, so multi-line addresses stay
// multi-line in the saved files.
func normaliseText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.FieldsFunc(line, unicode.IsSpace), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
