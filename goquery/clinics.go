package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clinicdir"
)

// clinicSelectors are tried most specific first.
var clinicSelectors = []string{
	".clinic-list a",
	".clinic-item a",
	".clinic-name a",
	"h3 a",
	"article a",
	".entry-title a",
	`a[href*="/our-clinics/"]`,
}

// Path fragments identifying clinic and region pages.
const (
	clinicPathMarker = "/our-clinics/"
	regionPathMarker = "/regions/"
)

// genericLabels are link texts that point at listing pages, not clinics.
var genericLabels = map[string]bool{
	"Our Clinics": true,
	"Clinics":     true,
}

// ParseClinicLinks returns the clinic links on a region page. A link
// qualifies when it points at a clinic page (not a region page), carries a
// specific label, and has not been seen yet.
func (p *Parser) ParseClinicLinks(html string, baseURL string, seen func(url string) bool) ([]clinicdir.ClinicLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, clinicdir.Errorf(clinicdir.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	if seen == nil {
		seen = func(string) bool { return false }
	}

	match := func(sel *goquery.Selection) (clinicdir.ClinicLink, bool) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == nil {
			return clinicdir.ClinicLink{}, false
		}
		if !strings.Contains(resolved.Path, clinicPathMarker) || strings.Contains(resolved.Path, regionPathMarker) {
			return clinicdir.ClinicLink{}, false
		}
		name := text(sel)
		if name == "" || genericLabels[name] {
			return clinicdir.ClinicLink{}, false
		}
		u := resolved.String()
		if seen(u) {
			return clinicdir.ClinicLink{}, false
		}
		return clinicdir.ClinicLink{Name: name, URL: u}, true
	}

	strategies := make([]strategy[clinicdir.ClinicLink], 0, len(clinicSelectors))
	for _, selector := range clinicSelectors {
		strategies = append(strategies, selectEach(selector, match))
	}

	return firstMatch(doc, strategies), nil
}
