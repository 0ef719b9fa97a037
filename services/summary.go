package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"rera-scraper/models"
	"rera-scraper/utils"
)

const maxURLDisplay = 60

// SummaryService computes and prints the end-of-run report.
type SummaryService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger, out: os.Stdout}
}

// Generate counts valid, complete and GST-bearing records.
func (s *SummaryService) Generate(records []models.ProjectRecord) *models.RunSummary {
	summary := &models.RunSummary{TotalProjects: len(records)}
	for _, r := range records {
		if r.HasIdentity() {
			summary.ValidProjects++
		}
		if r.RERANumber != "" && r.ProjectName != "" {
			summary.CompleteProjects++
		}
		if r.HasGST() {
			summary.ProjectsWithGST++
		}
	}
	return summary
}

func (s *SummaryService) Print(records []models.ProjectRecord, summary *models.RunSummary) {
	if len(records) == 0 {
		fmt.Fprintf(s.out, "\n\033[1;31m  No data to display\033[0m\n\n")
		return
	}

	sep := strings.Repeat("═", 80)
	thin := strings.Repeat("─", 80)

	fmt.Fprintf(s.out, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(s.out, "\033[1;35m  ODISHA RERA - TOP %d PROJECTS DETAILS\033[0m\n", len(records))
	fmt.Fprintf(s.out, "\033[1;35m%s\033[0m\n", sep)

	for i, r := range records {
		fmt.Fprintf(s.out, "\n\033[1;33m  PROJECT %d\033[0m\n", i+1)
		fmt.Fprintf(s.out, "  %s\n", thin)
		values := r.Values()
		for j, field := range models.Fields {
			v := values[j]
			if v == "" {
				v = models.NotAvailable
			}
			if field == models.FieldProjectURL {
				v = truncate(v, maxURLDisplay)
			}
			fmt.Fprintf(s.out, "   %-20s: %s\n", field, v)
		}
	}

	fmt.Fprintf(s.out, "\n\033[1;33m  Summary\033[0m\n")
	fmt.Fprintf(s.out, "  %s\n", thin)
	fmt.Fprintf(s.out, "  Successfully extracted : \033[1m%d\033[0m out of %d projects\n",
		summary.ValidProjects, summary.TotalProjects)
	fmt.Fprintf(s.out, "  RERA No. and name      : \033[1m%d\033[0m\n", summary.CompleteProjects)
	fmt.Fprintf(s.out, "  With GST numbers       : \033[1;32m%d\033[0m\n", summary.ProjectsWithGST)

	fmt.Fprintf(s.out, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// truncate shortens s to max runes, the last three being "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
