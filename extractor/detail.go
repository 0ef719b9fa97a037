package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	// HeadingSelector appears once a detail page has rendered.
	HeadingSelector = "h1, h2, h3"

	// PromoterTabXPath locates the tab that reveals promoter details.
	PromoterTabXPath = `//a[contains(text(), 'Promoter Details') or contains(text(), 'Promoter') or contains(@href, 'promoter')]`

	// PromoterSectionSelector matches the block holding promoter details.
	PromoterSectionSelector = "div.promoter-details, table, div.container, div[class*='promoter']"

	detailNameSelector    = "h1, h2, h3, div.project-title, div[class*='title'], div[class*='name']"
	detailSectionSelector = "div.project-details, div.container, table, div.card-body, div[class*='details']"
	promoterBlockSelector = "div.promoter-details, div[class*='promoter']"

	minPromoterNameLen = 3
	minAddressLen      = 10
)

var (
	promoterLabelXPath = `.//*[contains(text(), 'Name') or contains(text(), 'Proprietor') or contains(text(), 'Individual') or contains(text(), 'M/S')]/following-sibling::*`

	promoterNameXPaths = []string{
		`//*[contains(text(), 'Name') or contains(text(), 'Proprietor') or contains(text(), 'Individual') or contains(text(), 'M/S')]/following-sibling::*`,
		`//*[contains(text(), 'M/S')]`,
		`//*[contains(@class, 'promoter-name')]`,
	}

	addressXPaths = []string{
		`//*[contains(text(), 'Address')]/following-sibling::*`,
		`//*[contains(text(), 'Address')]/..//*`,
		`//div[contains(@class, 'address')]`,
		`//*[contains(@class, 'address')]`,
	}
)

// DetailProjectName reads the detail page's title.
func DetailProjectName(s *Scope) (string, bool) {
	return cssText(detailNameSelector)(s)
}

// DetailRERA looks for a registration number in the raw page source, then
// in the text of the project details section.
func DetailRERA(s *Scope) (string, bool) {
	return FirstOf(s,
		func(s *Scope) (string, bool) { return FindRERA(s.Source()) },
		patternIn(firstCSS(detailSectionSelector), FindRERA),
	)
}

// DetailPromoterName prefers a labelled value inside the promoter block and
// falls back to labelled values, "M/S" entries and promoter-name classes
// anywhere on the page.
func DetailPromoterName(s *Scope) (string, bool) {
	return FirstOf(s,
		func(s *Scope) (string, bool) {
			block := s.Find(promoterBlockSelector)
			if block.Length() == 0 {
				return "", false
			}
			return plausiblePromoterName(subScope(block.Nodes[0]).XPath(promoterLabelXPath))
		},
		func(s *Scope) (string, bool) {
			nodes := s.XPath(promoterNameXPaths...)
			if len(nodes) == 0 {
				return "", false
			}
			return plausiblePromoterName(nodes[:1])
		},
	)
}

func plausiblePromoterName(nodes []*html.Node) (string, bool) {
	for _, n := range nodes {
		t := strings.TrimSpace(InnerText(n))
		if runeLen(t) > minPromoterNameLen && !strings.Contains(t, "Name") {
			return t, true
		}
	}
	return "", false
}

// DetailPromoterAddress takes the first address candidate longer than ten
// characters that is not itself a label, falling back to the cell next to
// an "Address" row in the first table.
func DetailPromoterAddress(s *Scope) (string, bool) {
	return FirstOf(s,
		func(s *Scope) (string, bool) {
			for _, n := range s.XPath(addressXPaths...) {
				t := strings.TrimSpace(InnerText(n))
				if runeLen(t) > minAddressLen && !strings.Contains(t, "Address") {
					return t, true
				}
			}
			return "", false
		},
		func(s *Scope) (string, bool) {
			table, ok := s.First("table")
			if !ok {
				return "", false
			}
			return labelledCell(table, func(row string) bool {
				return strings.Contains(row, "Address")
			}, func(cell string) (string, bool) {
				return cell, runeLen(cell) > minAddressLen
			})
		},
	)
}

// DetailGST looks for a GST number in the promoter section text, then in the
// value cell of its GST/Tax table rows, then anywhere in the page source.
func DetailGST(s *Scope) (string, bool) {
	return FirstOf(s,
		patternIn(firstCSS(PromoterSectionSelector), FindGST),
		func(s *Scope) (string, bool) {
			section, ok := s.First(PromoterSectionSelector)
			if !ok {
				return "", false
			}
			table := section
			if section.Data != "table" {
				if table, ok = subScope(section).firstTable(); !ok {
					return "", false
				}
			}
			return labelledCell(table, func(row string) bool {
				return strings.Contains(row, "GST") || strings.Contains(row, "Tax")
			}, FindGST)
		},
		func(s *Scope) (string, bool) { return FindGST(s.Source()) },
	)
}

func (s *Scope) firstTable() (*html.Node, bool) {
	nodes := s.XPath(".//table")
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// labelledCell scans table rows whose text satisfies isLabel and applies
// accept to the text of each such row's second cell.
func labelledCell(table *html.Node, isLabel func(string) bool, accept func(string) (string, bool)) (string, bool) {
	for _, row := range subScope(table).XPath(".//tr") {
		if !isLabel(InnerText(row)) {
			continue
		}
		cells := subScope(row).XPath(".//td")
		if len(cells) < 2 {
			continue
		}
		if v, ok := accept(strings.TrimSpace(InnerText(cells[1]))); ok {
			return v, true
		}
	}
	return "", false
}
