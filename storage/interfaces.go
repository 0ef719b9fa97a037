package storage

import "rera-scraper/models"

// RecordWriter is the interface any database backend must satisfy.
type RecordWriter interface {
	Write(runID string, records []models.ProjectRecord) error
	Close() error
}

// RecordSaver persists a run's records to output files.
type RecordSaver interface {
	Save(records []models.ProjectRecord) ([]string, error)
}
