package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestMergePrecedence(t *testing.T) {
	r := ProjectRecord{
		ProjectURL:   "https://listing",
		RERANumber:   "RP/05/2023/00123",
		ProjectName:  "Card Name",
		PromoterName: "Card Promoter",
	}
	d := NewDetailInfo()
	d.ProjectName = "  Detail Name  "
	d.PromoterName = "   "
	d.GSTNumber = "21AABCA1234B1Z5"

	r.Merge(d)

	want := ProjectRecord{
		ProjectURL:   "https://listing",
		RERANumber:   "RP/05/2023/00123",
		ProjectName:  "Detail Name",
		PromoterName: "Card Promoter",
		GSTNumber:    "21AABCA1234B1Z5",
	}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
}

func TestUsable(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Acme", true},
		{"", false},
		{" \t", false},
		{NotAvailable, false},
		{" Not Available ", false},
	}
	for _, tt := range tests {
		if got := Usable(tt.in); got != tt.want {
			t.Errorf("Usable(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecordValuesOrder(t *testing.T) {
	r := ProjectRecord{"u", "r", "n", "p", "a", "g"}
	if got := RecordFromValues(r.Values()); got != r {
		t.Errorf("got %+v, want %+v", got, r)
	}
	if len(Fields) != len(r.Values()) {
		t.Errorf("Fields has %d names for %d values", len(Fields), len(r.Values()))
	}
	if got := RecordFromValues([]string{"u"}); got != BlankRecord("u") {
		t.Errorf("short row: got %+v", got)
	}
}

func TestIdentityAndGST(t *testing.T) {
	if BlankRecord("u").HasIdentity() {
		t.Error("blank record should have no identity")
	}
	if !(ProjectRecord{PromoterName: "Acme"}).HasIdentity() {
		t.Error("promoter alone should count as identity")
	}
	if (ProjectRecord{GSTNumber: NotAvailable}).HasGST() {
		t.Error("Not Available is not a GST number")
	}
}

func TestScrapeErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("click: %w", &ScrapeError{Op: "relocate card", Position: 3, Err: ErrStaleElement})
	if !IsStale(err) {
		t.Error("expected stale error to be detected through wrapping")
	}
	var se *ScrapeError
	if !errors.As(err, &se) || se.Position != 3 {
		t.Errorf("expected ScrapeError for project 3, got %v", err)
	}
	if got := se.Error(); got != "relocate card (project 3): element reference is stale" {
		t.Errorf("unexpected message %q", got)
	}
	if IsStale(ErrTimeout) {
		t.Error("timeout is not staleness")
	}
}
