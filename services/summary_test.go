package services

import (
	"bytes"
	"strings"
	"testing"

	"rera-scraper/models"
)

func sampleRecords() []models.ProjectRecord {
	return []models.ProjectRecord{
		{
			ProjectURL:      "https://rera.odisha.gov.in/projects/project-details/2f6a1c9e-4b7d-4e8a-9c3f-1a2b3c4d5e6f",
			RERANumber:      "RP/05/2023/00123",
			ProjectName:     "Sunrise Residency",
			PromoterName:    "Acme Builders Pvt Ltd",
			PromoterAddress: "Plot 42, Jaydev Vihar, Bhubaneswar",
			GSTNumber:       "21AABCA1234B1Z5",
		},
		{ProjectURL: "https://b", ProjectName: "Lake View", RERANumber: "PS/01/2022/00042"},
		{ProjectURL: "https://c", PromoterName: "Only Promoter"},
		models.BlankRecord("https://listing"),
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(newTestLogger())
	s := svc.Generate(sampleRecords())

	want := models.RunSummary{TotalProjects: 4, ValidProjects: 3, CompleteProjects: 2, ProjectsWithGST: 1}
	if *s != want {
		t.Errorf("got %+v, want %+v", *s, want)
	}
}

func TestSummaryIgnoresNotAvailableGST(t *testing.T) {
	svc := NewSummaryService(newTestLogger())
	s := svc.Generate([]models.ProjectRecord{{GSTNumber: models.NotAvailable}})
	if s.ProjectsWithGST != 0 {
		t.Errorf("ProjectsWithGST: got %d, want 0", s.ProjectsWithGST)
	}
}

func TestSummaryPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewSummaryService(newTestLogger())
	svc.out = &buf

	records := sampleRecords()
	svc.Print(records, svc.Generate(records))
	out := buf.String()

	for _, want := range []string{
		"PROJECT 1",
		"PROJECT 4",
		"Sunrise Residency",
		"https://rera.odisha.gov.in/projects/project-details/2f6a1...",
		"Not Available",
		"3\033[0m out of 4 projects",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "1a2b3c4d5e6f") {
		t.Error("long URL was not truncated")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 61)
	if got := truncate(long, 60); len(got) != 60 || !strings.HasSuffix(got, "...") {
		t.Errorf("got %q", got)
	}
	exact := strings.Repeat("x", 60)
	if got := truncate(exact, 60); got != exact {
		t.Errorf("60-char value should be kept, got %q", got)
	}
}
