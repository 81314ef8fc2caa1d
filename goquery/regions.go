package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clinicdir"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// regionSelectors are tried most specific first.
var regionSelectors = []string{
	`.region-list a[href*="/regions/"]`,
	`.clinic-regions a[href*="/regions/"]`,
	`[class*="region"] a[href*="/regions/"]`,
	`a[href*="/regions/"]`,
}

var titleCase = cases.Title(language.English)

// ParseRegions returns the regions linked from a listing page.
// Regions are deduplicated by absolute URL; the first occurrence wins.
func (p *Parser) ParseRegions(html string, baseURL string) ([]clinicdir.Region, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, clinicdir.Errorf(clinicdir.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	strategies := make([]strategy[clinicdir.Region], 0, len(regionSelectors))
	for _, selector := range regionSelectors {
		strategies = append(strategies, selectEach(selector, func(sel *goquery.Selection) (clinicdir.Region, bool) {
			href, _ := sel.Attr("href")
			resolved := resolveURL(base, href)
			if resolved == nil {
				return clinicdir.Region{}, false
			}
			name := text(sel)
			if name == "" {
				name = nameFromPath(resolved.Path)
			}
			return clinicdir.Region{Name: name, URL: resolved.String()}, true
		}))
	}

	matches := firstMatch(doc, strategies)

	seen := make(map[string]bool, len(matches))
	regions := make([]clinicdir.Region, 0, len(matches))
	for _, r := range matches {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		regions = append(regions, r)
	}
	return regions, nil
}

// nameFromPath derives a display name from the last non-empty path segment,
// e.g. "/our-clinics/regions/new-south-wales/" becomes "New South Wales".
func nameFromPath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return clinicdir.NotFound
	}
	slug := segments[len(segments)-1]
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	return titleCase.String(strings.ReplaceAll(slug, "-", " "))
}
