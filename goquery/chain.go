package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strategy is one way of matching items on a page.
type strategy[T any] func(doc *goquery.Document) []T

// selectEach builds a strategy that runs selector and keeps every selection
// accepted by match, in document order.
func selectEach[T any](selector string, match func(sel *goquery.Selection) (T, bool)) strategy[T] {
	return func(doc *goquery.Document) []T {
		var out []T
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if v, ok := match(sel); ok {
				out = append(out, v)
			}
		})
		return out
	}
}

// firstMatch applies strategies in order and returns the result of the
// first one that matches anything. Later strategies are never consulted
// once an earlier one succeeds.
func firstMatch[T any](doc *goquery.Document, strategies []strategy[T]) []T {
	for _, s := range strategies {
		if matches := s(doc); len(matches) > 0 {
			return matches
		}
	}
	return nil
}

// resolveURL resolves href against base. Returns nil if href cannot be parsed.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	return base.ResolveReference(ref)
}

// text returns the selection's text with runs of whitespace collapsed to a
// single space and the ends trimmed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
