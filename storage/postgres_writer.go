package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"rera-scraper/models"
)

const columnsPerRecord = 8

var _ RecordWriter = (*PostgresWriter)(nil)

// PostgresWriter persists each run's records to PostgreSQL, keyed by run and position.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS rera_projects (
			run_id           UUID        NOT NULL,
			position         INTEGER     NOT NULL,
			project_url      TEXT        NOT NULL DEFAULT '',
			rera_number      TEXT        NOT NULL DEFAULT '',
			project_name     TEXT        NOT NULL DEFAULT '',
			promoter_name    TEXT        NOT NULL DEFAULT '',
			promoter_address TEXT        NOT NULL DEFAULT '',
			gst_number       TEXT        NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_rera_projects_rera ON rera_projects(rera_number);
	`)
	return err
}

// Write upserts a run's records, positions numbered from 1.
func (pw *PostgresWriter) Write(runID string, records []models.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}
	query, args := buildInsert(runID, records)
	if _, err := pw.db.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: insert run %s: %w", runID, err)
	}
	return nil
}

func buildInsert(runID string, records []models.ProjectRecord) (string, []interface{}) {
	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*columnsPerRecord)

	for idx, r := range records {
		base := idx * columnsPerRecord
		placeholders := make([]string, columnsPerRecord)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			runID, idx+1, r.ProjectURL, r.RERANumber, r.ProjectName,
			r.PromoterName, r.PromoterAddress, r.GSTNumber)
	}

	query := fmt.Sprintf(`
		INSERT INTO rera_projects (run_id, position, project_url, rera_number, project_name, promoter_name, promoter_address, gst_number)
		VALUES %s
		ON CONFLICT (run_id, position) DO UPDATE SET
			project_url      = EXCLUDED.project_url,
			rera_number      = EXCLUDED.rera_number,
			project_name     = EXCLUDED.project_name,
			promoter_name    = EXCLUDED.promoter_name,
			promoter_address = EXCLUDED.promoter_address,
			gst_number       = EXCLUDED.gst_number
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchRun reads a run's records back in position order.
func (pw *PostgresWriter) FetchRun(runID string) ([]models.ProjectRecord, error) {
	rows, err := pw.db.Query(`
		SELECT project_url, rera_number, project_name, promoter_name, promoter_address, gst_number
		FROM rera_projects
		WHERE run_id = $1
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch run %s: %w", runID, err)
	}
	defer rows.Close()

	var records []models.ProjectRecord
	for rows.Next() {
		var r models.ProjectRecord
		if err := rows.Scan(
			&r.ProjectURL, &r.RERANumber, &r.ProjectName,
			&r.PromoterName, &r.PromoterAddress, &r.GSTNumber,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
