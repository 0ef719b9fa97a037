package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rera-scraper/models"
	"rera-scraper/utils"
)

func sampleRecords() []models.ProjectRecord {
	return []models.ProjectRecord{
		{
			ProjectURL:      "https://rera.odisha.gov.in/projects/project-details/2f6a1c9e-4b7d-4e8a-9c3f-1a2b3c4d5e6f",
			RERANumber:      "RP/05/2023/00123",
			ProjectName:     "Sunrise Residency",
			PromoterName:    "Acme Builders Pvt Ltd",
			PromoterAddress: "Plot 42, \"Jaydev Vihar\", Bhubaneswar",
			GSTNumber:       "21AABCA1234B1Z5",
		},
		{ProjectURL: "https://b", ProjectName: "Kalinga <Heights> & Co", RERANumber: "PS/01/2022/00042"},
		{ProjectURL: "https://c", ProjectName: "ଓଡ଼ିଶା Enclave"},
		models.BlankRecord("https://listing"),
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if first != "Project URL,RERA Regd. No,Project Name,Promoter Name,Promoter Address,GST No" {
		t.Errorf("unexpected header %q", first)
	}

	got, err := DecodeCSV(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := sampleRecords()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeCSVRejectsWrongHeader(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("a,b,c,d,e,f\n1,2,3,4,5,6\n"))
	if err == nil {
		t.Fatal("expected an error for a foreign header")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, sampleRecords()); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`"RERA Regd. No": "RP/05/2023/00123"`,
		`"Project Name": "Kalinga <Heights> & Co"`,
		`ଓଡ଼ିଶା Enclave`,
		"\n  {\n    \"Project URL\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %q", want)
		}
	}

	got, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := sampleRecords()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	generated := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	if err := RenderHTML(&buf, sampleRecords(), generated); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<th class=\"py-3 px-4 text-left\">GST No</th>",
		"Sunrise Residency",
		"Kalinga &lt;Heights&gt; &amp; Co",
		">https://rera.odisha.gov.in/projects/project-detail...</a>",
		"Generated on 2024-03-09 14:05:07",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if got := strings.Count(out, "<tr class=\"border-b"); got != 4 {
		t.Errorf("expected 4 rows, got %d", got)
	}
	if got := strings.Count(out, models.NotAvailable); got < 4 {
		t.Errorf("expected empty cells shown as %q, found %d", models.NotAvailable, got)
	}
}

func TestLinkText(t *testing.T) {
	if got := linkText("https://b"); got != "https://b..." {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("u", 80)
	if got := linkText(long); got != strings.Repeat("u", 50)+"..." {
		t.Errorf("got %q", got)
	}
}

func TestExporterSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := NewExporter(dir, "top6", utils.NewLogger().WithLevel(utils.LevelError))
	e.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	paths, err := e.Save(sampleRecords())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 files, got %v", paths)
	}
	for _, ext := range []string{"csv", "json", "html"} {
		if _, err := os.Stat(filepath.Join(dir, "top6."+ext)); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected only the three outputs, found %d entries", len(entries))
	}

	f, err := os.Open(e.Path("json"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := DecodeJSON(f)
	if err != nil {
		t.Fatalf("decode saved JSON: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("expected 4 saved records, got %d", len(got))
	}
}

func TestExporterSaveNoRecords(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "top6", utils.NewLogger().WithLevel(utils.LevelError))

	if _, err := e.Save(nil); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no files, found %d", len(entries))
	}
}

func TestBuildInsert(t *testing.T) {
	query, args := buildInsert("run-1", sampleRecords()[:2])

	if !strings.Contains(query, "($1,$2,$3,$4,$5,$6,$7,$8),($9,$10,$11,$12,$13,$14,$15,$16)") {
		t.Errorf("unexpected placeholders in %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (run_id, position) DO UPDATE") {
		t.Error("expected an upsert on (run_id, position)")
	}
	if len(args) != 16 {
		t.Fatalf("expected 16 args, got %d", len(args))
	}
	if args[0] != "run-1" || args[1] != 1 || args[9] != 2 {
		t.Errorf("unexpected run/position args: %v %v %v", args[0], args[1], args[9])
	}
	if args[12] != "Kalinga <Heights> & Co" {
		t.Errorf("unexpected project name arg %v", args[12])
	}
}
