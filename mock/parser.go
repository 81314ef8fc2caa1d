package mock

import "github.com/fwojciec/clinicdir"

var _ clinicdir.DirectoryParser = (*DirectoryParser)(nil)

// DirectoryParser is a mock implementation of clinicdir.DirectoryParser.
type DirectoryParser struct {
	ParseRegionsFn     func(html string, baseURL string) ([]clinicdir.Region, error)
	ParseClinicLinksFn func(html string, baseURL string, seen func(string) bool) ([]clinicdir.ClinicLink, error)
	ParseClinicFn      func(html string, pageURL string) (*clinicdir.Clinic, error)
}

func (p *DirectoryParser) ParseRegions(html string, baseURL string) ([]clinicdir.Region, error) {
	return p.ParseRegionsFn(html, baseURL)
}

func (p *DirectoryParser) ParseClinicLinks(html string, baseURL string, seen func(string) bool) ([]clinicdir.ClinicLink, error) {
	return p.ParseClinicLinksFn(html, baseURL, seen)
}

func (p *DirectoryParser) ParseClinic(html string, pageURL string) (*clinicdir.Clinic, error) {
	return p.ParseClinicFn(html, pageURL)
}
