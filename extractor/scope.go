// Package extractor reads project fields out of HTML snapshots of the RERA
// portal. Every extraction is a pure function of a Scope, so the browser is
// only needed to take the snapshot.
package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Scope is one parsed snapshot: a listing card's outer HTML or a full page.
type Scope struct {
	source string
	root   *html.Node
	doc    *goquery.Document
	order  map[*html.Node]int
	text   *string
}

// Parse builds a Scope from markup.
func Parse(markup string) (*Scope, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse markup: %w", err)
	}
	return &Scope{
		source: markup,
		root:   root,
		doc:    goquery.NewDocumentFromNode(root),
	}, nil
}

// ParseCard builds a Scope rooted at the card element in markup, so
// queries see the card's descendants only. Markup without a card element
// keeps the document as root.
func ParseCard(markup string) (*Scope, error) {
	s, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	card, ok := s.First(CardSelector)
	if !ok {
		return s, nil
	}
	cs := subScope(card)
	cs.source = markup
	return cs, nil
}

// subScope narrows queries to the subtree under n. Only relative (".//")
// XPath expressions and Find stay inside the subtree.
func subScope(n *html.Node) *Scope {
	return &Scope{root: n, doc: goquery.NewDocumentFromNode(n)}
}

// Source returns the raw markup the scope was built from.
func (s *Scope) Source() string { return s.source }

// Text returns the scope's visible text.
func (s *Scope) Text() string {
	if s.text == nil {
		t := InnerText(s.root)
		s.text = &t
	}
	return *s.text
}

// Find runs a CSS selector over the scope.
func (s *Scope) Find(selector string) *goquery.Selection {
	return s.doc.Find(selector)
}

// First returns the first element matching the CSS selector, in document order.
func (s *Scope) First(selector string) (*html.Node, bool) {
	sel := s.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, false
	}
	return sel.Nodes[0], true
}

// XPath evaluates every expression and returns the union of their matches in
// document order. Invalid expressions contribute nothing.
func (s *Scope) XPath(exprs ...string) []*html.Node {
	seen := make(map[*html.Node]struct{})
	var nodes []*html.Node
	for _, expr := range exprs {
		found, err := htmlquery.QueryAll(s.root, expr)
		if err != nil {
			continue
		}
		for _, n := range found {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			nodes = append(nodes, n)
		}
	}

	if len(exprs) > 1 {
		pos := s.documentOrder()
		sort.SliceStable(nodes, func(i, j int) bool { return pos[nodes[i]] < pos[nodes[j]] })
	}
	return nodes
}

func (s *Scope) documentOrder() map[*html.Node]int {
	if s.order != nil {
		return s.order
	}
	s.order = make(map[*html.Node]int)
	i := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		s.order[n] = i
		i++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(s.root)
	return s.order
}
