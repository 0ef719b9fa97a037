package models

import "strings"

// NotAvailable marks a detail-page field that no extraction strategy filled.
const NotAvailable = "Not Available"

// Column names shared by every output format, in output order.
const (
	FieldProjectURL      = "Project URL"
	FieldRERANumber      = "RERA Regd. No"
	FieldProjectName     = "Project Name"
	FieldPromoterName    = "Promoter Name"
	FieldPromoterAddress = "Promoter Address"
	FieldGSTNumber       = "GST No"
)

// Fields lists the record columns in output order.
var Fields = []string{
	FieldProjectURL,
	FieldRERANumber,
	FieldProjectName,
	FieldPromoterName,
	FieldPromoterAddress,
	FieldGSTNumber,
}

// ProjectRecord is one scraped project as written to every output.
// It is created per listing position and never mutated after being
// appended to the run's results.
type ProjectRecord struct {
	ProjectURL      string `json:"Project URL"`
	RERANumber      string `json:"RERA Regd. No"`
	ProjectName     string `json:"Project Name"`
	PromoterName    string `json:"Promoter Name"`
	PromoterAddress string `json:"Promoter Address"`
	GSTNumber       string `json:"GST No"`
}

// BlankRecord is the placeholder appended when a position could not be scraped.
func BlankRecord(url string) ProjectRecord {
	return ProjectRecord{ProjectURL: url}
}

// Values returns the record's fields in the order of Fields.
func (r ProjectRecord) Values() []string {
	return []string{
		r.ProjectURL,
		r.RERANumber,
		r.ProjectName,
		r.PromoterName,
		r.PromoterAddress,
		r.GSTNumber,
	}
}

// RecordFromValues is the inverse of Values. Missing trailing values stay empty.
func RecordFromValues(values []string) ProjectRecord {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return ProjectRecord{
		ProjectURL:      get(0),
		RERANumber:      get(1),
		ProjectName:     get(2),
		PromoterName:    get(3),
		PromoterAddress: get(4),
		GSTNumber:       get(5),
	}
}

// Merge copies every usable detail-page value over the card-page value.
// Empty, whitespace-only and NotAvailable values leave the record untouched.
func (r *ProjectRecord) Merge(d DetailInfo) {
	mergeField(&r.RERANumber, d.RERANumber)
	mergeField(&r.ProjectName, d.ProjectName)
	mergeField(&r.PromoterName, d.PromoterName)
	mergeField(&r.PromoterAddress, d.PromoterAddress)
	mergeField(&r.GSTNumber, d.GSTNumber)
}

// HasIdentity reports whether any of RERA number, name or promoter was found.
func (r ProjectRecord) HasIdentity() bool {
	return r.RERANumber != "" || r.ProjectName != "" || r.PromoterName != ""
}

// HasGST reports whether a real GST number was found.
func (r ProjectRecord) HasGST() bool {
	return Usable(r.GSTNumber)
}

// Usable reports whether v carries a real value.
func Usable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != NotAvailable
}

func mergeField(dst *string, v string) {
	if Usable(v) {
		*dst = strings.TrimSpace(v)
	}
}

// CardInfo holds what can be read from a listing card without leaving the listing.
type CardInfo struct {
	Index        int
	ProjectName  string
	RERANumber   string
	PromoterName string
	HasDetails   bool
}

// DetailInfo holds the fields read from a project's detail page.
type DetailInfo struct {
	RERANumber      string
	ProjectName     string
	PromoterName    string
	PromoterAddress string
	GSTNumber       string
}

// NewDetailInfo returns a DetailInfo with every field set to NotAvailable.
func NewDetailInfo() DetailInfo {
	return DetailInfo{
		RERANumber:      NotAvailable,
		ProjectName:     NotAvailable,
		PromoterName:    NotAvailable,
		PromoterAddress: NotAvailable,
		GSTNumber:       NotAvailable,
	}
}

// RunSummary holds the success counts printed at the end of a run.
type RunSummary struct {
	TotalProjects    int
	ValidProjects    int
	CompleteProjects int
	ProjectsWithGST  int
}
