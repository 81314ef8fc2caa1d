package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clinicdir"
)

var (
	phonePattern = regexp.MustCompile(`\(?\d{2}\)?[-.\s]?\d{4}[-.\s]?\d{4}`)
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w{2,}`)
	leadingNoise = regexp.MustCompile(`^\s*[^A-Za-z0-9]*`)
)

const (
	nameSelector         = "h1.entry-title"
	addressSelector      = ".address"
	addressDecorations   = "i, svg, span"
	phoneButtonSelector  = `a.rose-button[href^="tel:"]`
	phoneLinkSelector    = `a[href^="tel:"]`
	phoneSectionSelector = `.contact, .phone, .clinic-info, [class*="contact"]`
	emailSectionSelector = `.contact, .email, .clinic-info, [class*="contact"]`
	serviceHeading       = "h2, h3, h4"
)

// serviceSelectors are tried most specific first.
var serviceSelectors = []string{
	".clinic-2020-services .featured-posts article",
	".services article",
	".services-list li",
	`[class*="service"] article`,
	`[class*="service"] li`,
}

// ParseClinic extracts a clinic record from a clinic page. Each field is
// extracted independently; a missing field is logged and set to
// clinicdir.NotFound without affecting the others.
func (p *Parser) ParseClinic(html string, pageURL string) (*clinicdir.Clinic, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	clinic := &clinicdir.Clinic{
		Name:     p.orWarn(extractName(doc), "name", pageURL),
		Address:  p.orWarn(extractAddress(doc), "address", pageURL),
		Phone:    clinicdir.NormalizePhone(p.orWarn(extractPhone(doc), "phone", pageURL)),
		Services: extractServices(doc),
		URL:      pageURL,
	}

	email, err := clinicdir.NormalizeEmail(p.orWarn(extractEmail(doc), "email", pageURL))
	if err != nil {
		p.logger.Warn("clinic field invalid", "field", "email", "url", pageURL, "err", clinicdir.ErrorMessage(err))
	}
	clinic.Email = email

	return clinic, nil
}

// orWarn returns value, or logs a warning and returns NotFound if value is empty.
func (p *Parser) orWarn(value, field, pageURL string) string {
	if value != "" {
		return value
	}
	p.logger.Warn("clinic field not found", "field", field, "url", pageURL)
	return clinicdir.NotFound
}

func extractName(doc *goquery.Document) string {
	return text(doc.Find(nameSelector).First())
}

// extractAddress reads the address container from a detached copy so the
// page itself is left untouched for the other extractors.
func extractAddress(doc *goquery.Document) string {
	container := doc.Find(addressSelector).First()
	if container.Length() == 0 {
		return ""
	}

	address := container.Clone()
	address.Find(addressDecorations).Remove()
	address.Find("br").ReplaceWithHtml(" ")

	joined := strings.Join(textPieces(address), " ")
	return strings.TrimSpace(leadingNoise.ReplaceAllString(joined, ""))
}

// textPieces returns the trimmed, non-empty text nodes under sel in
// document order.
func textPieces(sel *goquery.Selection) []string {
	var pieces []string
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			if s := strings.TrimSpace(child.Text()); s != "" {
				pieces = append(pieces, s)
			}
			return
		}
		pieces = append(pieces, textPieces(child)...)
	})
	return pieces
}

func extractPhone(doc *goquery.Document) string {
	if button := doc.Find(phoneButtonSelector).First(); button.Length() > 0 {
		if m := phonePattern.FindString(text(button)); m != "" {
			return strings.TrimSpace(m)
		}
	}

	if link := doc.Find(phoneLinkSelector).First(); link.Length() > 0 {
		href, _ := link.Attr("href")
		return strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
	}

	sections := doc.Find(phoneSectionSelector)
	if sections.Length() == 0 {
		sections = doc.Selection
	}
	return firstPatternMatch(sections, phonePattern)
}

func extractEmail(doc *goquery.Document) string {
	mailto := doc.Find("a[href]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		return hasPrefixFold(href, "mailto:")
	}).First()
	if mailto.Length() > 0 {
		href, _ := mailto.Attr("href")
		if email := strings.TrimSpace(href[len("mailto:"):]); strings.Contains(email, "@") {
			return email
		}
	}

	sections := doc.Find(emailSectionSelector)
	if sections.Length() == 0 {
		sections = doc.Find("body")
	}
	if sections.Length() == 0 {
		sections = doc.Selection
	}
	return firstPatternMatch(sections, emailPattern)
}

// firstPatternMatch scans each selection's text in order and returns the
// first match of re.
func firstPatternMatch(sections *goquery.Selection, re *regexp.Regexp) string {
	var found string
	sections.EachWithBreak(func(_ int, section *goquery.Selection) bool {
		found = re.FindString(section.Text())
		return found == ""
	})
	return found
}

func extractServices(doc *goquery.Document) string {
	strategies := make([]strategy[string], 0, len(serviceSelectors))
	for _, selector := range serviceSelectors {
		strategies = append(strategies, selectEach(selector, func(sel *goquery.Selection) (string, bool) {
			name := text(sel.Find(serviceHeading).First())
			return name, name != ""
		}))
	}
	return clinicdir.JoinServices(firstMatch(doc, strategies))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
