package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	reraPattern = regexp.MustCompile(`(RP|PS)/\d{1,2}/\d{4}/\d{5}`)
	gstPattern  = regexp.MustCompile(`[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9A-Z]`)

	reraExact = regexp.MustCompile(`^(RP|PS)/\d{1,2}/\d{4}/\d{5}$`)
	gstExact  = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9A-Z]$`)
)

// Strategy tries to produce one field value from a scope.
type Strategy func(*Scope) (string, bool)

// FirstOf runs strategies in order and returns the first value produced.
func FirstOf(s *Scope, strategies ...Strategy) (string, bool) {
	for _, strategy := range strategies {
		if v, ok := strategy(s); ok {
			return v, true
		}
	}
	return "", false
}

// ValidRERA reports whether v is exactly a RERA registration number.
func ValidRERA(v string) bool { return reraExact.MatchString(v) }

// ValidGST reports whether v is exactly a 15-character GST number.
func ValidGST(v string) bool { return gstExact.MatchString(v) }

// FindRERA returns the first RERA registration number in text.
func FindRERA(text string) (string, bool) {
	return match(reraPattern, text)
}

// FindGST returns the first GST number in text.
func FindGST(text string) (string, bool) {
	return match(gstPattern, text)
}

func match(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindString(text)
	return m, m != ""
}

// cssText yields the trimmed text of the first element matching selector.
func cssText(selector string) Strategy {
	return func(s *Scope) (string, bool) {
		n, ok := s.First(selector)
		if !ok {
			return "", false
		}
		t := strings.TrimSpace(InnerText(n))
		return t, t != ""
	}
}

// patternIn applies find to the text of the first node the locate function returns.
func patternIn(locate func(*Scope) (*html.Node, bool), find func(string) (string, bool)) Strategy {
	return func(s *Scope) (string, bool) {
		n, ok := locate(s)
		if !ok {
			return "", false
		}
		return find(InnerText(n))
	}
}

func firstCSS(selector string) func(*Scope) (*html.Node, bool) {
	return func(s *Scope) (*html.Node, bool) { return s.First(selector) }
}

func firstXPath(exprs ...string) func(*Scope) (*html.Node, bool) {
	return func(s *Scope) (*html.Node, bool) {
		nodes := s.XPath(exprs...)
		if len(nodes) == 0 {
			return nil, false
		}
		return nodes[0], true
	}
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
