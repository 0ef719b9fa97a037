package extractor

import (
	"strings"

	"rera-scraper/models"
)

const (
	// CardSelector matches one project card on the listing page.
	CardSelector = "div.project-card"

	// DetailsLinkXPath locates a card's "view details" control, relative to the card.
	DetailsLinkXPath = `.//a[contains(text(), 'View Details') or contains(text(), 'Details') or contains(@class, 'view-details') or contains(@href, 'details')]`

	cardNameSelector = "h1, h2, h3, h4, h5, div.card-title, div[class*='title'], div[class*='name']"
)

var (
	cardRERALabelXPaths = []string{
		`.//*[contains(text(), 'Reg') or contains(text(), 'No') or contains(text(), 'RP/') or contains(text(), 'PS/')]`,
		`.//*[contains(@class, 'reg')]`,
	}
	cardPromoterXPaths = []string{
		`.//*[contains(text(), 'by ') or contains(text(), 'Promoter') or contains(text(), 'Developer')]`,
		`.//*[contains(@class, 'promoter')]`,
	}
)

// CardProjectName reads the card's title.
func CardProjectName(s *Scope) (string, bool) {
	return cssText(cardNameSelector)(s)
}

// CardRERA looks for a registration number in the whole card text, then in
// the first registration-labelled element.
func CardRERA(s *Scope) (string, bool) {
	return FirstOf(s,
		func(s *Scope) (string, bool) { return FindRERA(s.Text()) },
		patternIn(firstXPath(cardRERALabelXPaths...), FindRERA),
	)
}

// CardPromoterName reads the promoter element's text with a leading "by " removed.
func CardPromoterName(s *Scope) (string, bool) {
	nodes := s.XPath(cardPromoterXPaths...)
	if len(nodes) == 0 {
		return "", false
	}
	t := strings.TrimSpace(InnerText(nodes[0]))
	t = strings.TrimSpace(strings.TrimPrefix(t, "by "))
	return t, t != ""
}

// HasDetailsLink reports whether the card carries a "view details" control.
func HasDetailsLink(s *Scope) bool {
	return len(s.XPath(DetailsLinkXPath)) > 0
}

// ExtractCard reads every card-scope field. Fields no strategy fills stay empty.
func ExtractCard(s *Scope, index int) models.CardInfo {
	info := models.CardInfo{Index: index}
	info.ProjectName, _ = CardProjectName(s)
	info.RERANumber, _ = CardRERA(s)
	info.PromoterName, _ = CardPromoterName(s)
	info.HasDetails = HasDetailsLink(s)
	return info
}
