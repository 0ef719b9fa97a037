package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"rera-scraper/models"
)

// EncodeJSON writes records as an indented JSON array keyed by field name.
// Non-ASCII text and HTML characters are written as-is.
func EncodeJSON(w io.Writer, records []models.ProjectRecord) error {
	if records == nil {
		records = []models.ProjectRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}
	return nil
}

func DecodeJSON(r io.Reader) ([]models.ProjectRecord, error) {
	var records []models.ProjectRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("json: decode: %w", err)
	}
	return records, nil
}
