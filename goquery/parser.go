// Package goquery implements clinicdir.DirectoryParser with CSS selector
// chains evaluated by github.com/PuerkitoBio/goquery.
package goquery

import (
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clinicdir"
)

var _ clinicdir.DirectoryParser = (*Parser)(nil)

// Parser extracts regions, clinic links and clinic details from directory
// pages. It is stateless apart from its logger and safe to reuse.
type Parser struct {
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for field-level extraction warnings.
// By default warnings are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, clinicdir.Errorf(clinicdir.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
