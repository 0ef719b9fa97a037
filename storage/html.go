package storage

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"rera-scraper/models"
)

const maxLinkText = 50

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"orNA":     orNotAvailable,
	"linkText": linkText,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Odisha RERA Registered Projects</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-100">
    <div class="container mx-auto py-8 px-4">
        <h1 class="text-3xl font-bold text-center mb-8">Odisha RERA Registered Projects</h1>
        <div class="overflow-x-auto">
            <table class="min-w-full bg-white shadow-md rounded-lg">
                <thead class="bg-gray-800 text-white">
                    <tr>
                        <th class="py-3 px-4 text-left">Project Name</th>
                        <th class="py-3 px-4 text-left">RERA Regd. No</th>
                        <th class="py-3 px-4 text-left">Promoter Name</th>
                        <th class="py-3 px-4 text-left">Promoter Address</th>
                        <th class="py-3 px-4 text-left">GST No</th>
                        <th class="py-3 px-4 text-left">Project URL</th>
                    </tr>
                </thead>
                <tbody>
{{- range .Records}}
                    <tr class="border-b hover:bg-gray-50">
                        <td class="py-3 px-4">{{orNA .ProjectName}}</td>
                        <td class="py-3 px-4">{{orNA .RERANumber}}</td>
                        <td class="py-3 px-4">{{orNA .PromoterName}}</td>
                        <td class="py-3 px-4">{{orNA .PromoterAddress}}</td>
                        <td class="py-3 px-4">{{orNA .GSTNumber}}</td>
                        <td class="py-3 px-4">{{if .ProjectURL}}<a href="{{.ProjectURL}}" class="text-blue-600 hover:underline" target="_blank">{{linkText .ProjectURL}}</a>{{else}}Not Available{{end}}</td>
                    </tr>
{{- end}}
                </tbody>
            </table>
        </div>
        <p class="text-center mt-4 text-gray-600">Generated on {{.Generated}}</p>
    </div>
</body>
</html>
`))

// RenderHTML writes a styled HTML table of records stamped with generated.
func RenderHTML(w io.Writer, records []models.ProjectRecord, generated time.Time) error {
	data := struct {
		Records   []models.ProjectRecord
		Generated string
	}{
		Records:   records,
		Generated: generated.Format("2006-01-02 15:04:05"),
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("html: render: %w", err)
	}
	return nil
}

func orNotAvailable(v string) string {
	if v == "" {
		return models.NotAvailable
	}
	return v
}

func linkText(url string) string {
	r := []rune(url)
	if len(r) > maxLinkText {
		r = r[:maxLinkText]
	}
	return string(r) + "..."
}
