package clinicdir

// DirectoryParser turns fetched pages into directory entities. Each method
// applies an ordered chain of selector strategies and keeps the result of
// the first strategy that matches anything.
type DirectoryParser interface {
	// ParseRegions returns the regions linked from the listing page,
	// deduplicated by absolute URL. baseURL resolves relative links.
	ParseRegions(html string, baseURL string) ([]Region, error)

	// ParseClinicLinks returns the clinic links on a region page, skipping
	// generic labels, region links and any URL for which seen returns true.
	ParseClinicLinks(html string, baseURL string, seen func(url string) bool) ([]ClinicLink, error)

	// ParseClinic extracts a clinic record from a clinic page. Fields that
	// cannot be found are set to NotFound; only a page that cannot be
	// parsed at all yields an error.
	ParseClinic(html string, pageURL string) (*Clinic, error)
}
