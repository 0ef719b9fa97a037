package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rera-scraper/models"
	"rera-scraper/utils"
)

// ErrNoRecords is returned by Save when there is nothing to write.
var ErrNoRecords = errors.New("storage: no records to save")

// Exporter writes a run's records as CSV, JSON and HTML files sharing one basename.
type Exporter struct {
	dir      string
	basename string
	logger   *utils.Logger
	now      func() time.Time
}

func NewExporter(dir, basename string, logger *utils.Logger) *Exporter {
	return &Exporter{
		dir:      dir,
		basename: basename,
		logger:   logger.With("storage"),
		now:      time.Now,
	}
}

// Path returns the output path for the given extension.
func (e *Exporter) Path(ext string) string {
	return filepath.Join(e.dir, e.basename+"."+ext)
}

// Save renders all three formats in memory and only then writes them, each
// through a temporary file renamed into place. It returns the written paths.
func (e *Exporter) Save(records []models.ProjectRecord) ([]string, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	outputs := []struct {
		ext    string
		render func(*bytes.Buffer) error
	}{
		{"csv", func(b *bytes.Buffer) error { return EncodeCSV(b, records) }},
		{"json", func(b *bytes.Buffer) error { return EncodeJSON(b, records) }},
		{"html", func(b *bytes.Buffer) error { return RenderHTML(b, records, e.now()) }},
	}

	rendered := make([][]byte, len(outputs))
	for i, o := range outputs {
		var buf bytes.Buffer
		if err := o.render(&buf); err != nil {
			return nil, err
		}
		rendered[i] = buf.Bytes()
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create output dir: %w", err)
	}

	paths := make([]string, 0, len(outputs))
	for i, o := range outputs {
		path := e.Path(o.ext)
		if err := writeFileAtomic(path, rendered[i]); err != nil {
			return paths, err
		}
		e.logger.Info("Saved %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp for %q: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("storage: chmod %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: rename into %q: %w", path, err)
	}
	return nil
}
