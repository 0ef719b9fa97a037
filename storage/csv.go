package storage

import (
	"encoding/csv"
	"fmt"
	"io"

	"rera-scraper/models"
)

// EncodeCSV writes a header row of the field names followed by one row per record.
func EncodeCSV(w io.Writer, records []models.ProjectRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Fields); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads records written by EncodeCSV.
func DecodeCSV(r io.Reader) ([]models.ProjectRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(models.Fields)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	for i, name := range models.Fields {
		if header[i] != name {
			return nil, fmt.Errorf("csv: column %d is %q, want %q", i+1, header[i], name)
		}
	}

	var records []models.ProjectRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		records = append(records, models.RecordFromValues(row))
	}
	return records, nil
}
