// Package crawl provides clinic directory crawling orchestration.
// It coordinates region discovery, clinic link discovery, fetching,
// extraction and streaming storage of clinic records.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/clinicdir"
)

// DefaultListingPath is appended to the base URL to find the region listing.
const DefaultListingPath = "/our-clinics/"

// Crawler orchestrates a sequential crawl of a clinic directory.
type Crawler struct {
	BaseURL     string
	ListingPath string
	Fetcher     clinicdir.Fetcher
	Parser      clinicdir.DirectoryParser
	Throttle    *Throttle
	Logger      *slog.Logger
	MaxRetries  int
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl.
type Result struct {
	Regions int
	Saved   int
	Skipped int
	Failed  int
}

// OpenFunc opens the sink that receives clinic records. It is called once
// regions have been discovered.
type OpenFunc func() (clinicdir.ClinicWriter, error)

// Run crawls every region and clinic and streams each extracted clinic to
// the sink returned by open. Per-region and per-clinic failures are logged
// and skipped. The sink is always closed before Run returns.
//
// An error is returned only if the sink cannot be opened, written or
// closed, or if ctx is canceled; the Result reflects the rows written so far.
func (c *Crawler) Run(ctx context.Context, open OpenFunc) (result *Result, err error) {
	result = &Result{}
	logger := c.logger()

	regions := c.DiscoverRegions(ctx)
	result.Regions = len(regions)
	if len(regions) == 0 {
		logger.Error("no regions found", "url", c.listingURL())
		return result, ctx.Err()
	}

	w, err := open()
	if err != nil {
		return result, fmt.Errorf("open sink: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
	}()

	visited := NewVisited()

	for _, region := range regions {
		logger.Info("processing region", "region", region.Name, "url", region.URL)
		if err := c.Throttle.Wait(ctx, region.URL); err != nil {
			return result, err
		}

		clinics := c.DiscoverClinics(ctx, region.URL, visited)

		for _, link := range clinics {
			logger.Info("scraping clinic", "clinic", link.Name, "url", link.URL)
			if err := c.Throttle.Wait(ctx, link.URL); err != nil {
				return result, err
			}

			clinic, err := c.extractSafely(ctx, link.URL, visited)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return result, ctxErr
				}
				switch clinicdir.ErrorCode(err) {
				case clinicdir.ECONFLICT:
					result.Skipped++
					logger.Debug("skipping duplicate clinic", "clinic", link.Name, "url", link.URL)
				case clinicdir.EINTERNAL:
					result.Failed++
					logger.Error("clinic extraction failed", "clinic", link.Name, "url", link.URL, "err", err)
				default:
					result.Failed++
					logger.Warn("clinic failed", "clinic", link.Name, "url", link.URL, "err", err)
				}
				continue
			}

			clinic.Region = region.Name
			if err := w.WriteClinic(ctx, clinic); err != nil {
				return result, fmt.Errorf("write clinic %s: %w", clinic.URL, err)
			}
			result.Saved++
			logger.Info("clinic saved", "clinic", clinic.Name, "region", clinic.Region, "count", result.Saved)
		}
	}

	return result, nil
}

// DiscoverRegions fetches the listing page and returns its regions in page
// order. Failures are logged and yield an empty result.
func (c *Crawler) DiscoverRegions(ctx context.Context) []clinicdir.Region {
	logger := c.logger()
	listing := c.listingURL()

	html, err := c.fetch(ctx, listing)
	if err != nil {
		logger.Error("could not fetch listing page", "url", listing, "err", err)
		return nil
	}

	regions, err := c.Parser.ParseRegions(html, c.BaseURL)
	if err != nil {
		logger.Error("could not parse listing page", "url", listing, "err", err)
		return nil
	}

	logger.Info("found regions", "count", len(regions))
	return regions
}

// DiscoverClinics fetches a region page and returns the clinic links on it
// that are not yet in seen. Failures are logged and yield an empty result.
func (c *Crawler) DiscoverClinics(ctx context.Context, regionURL string, seen clinicdir.VisitedSet) []clinicdir.ClinicLink {
	logger := c.logger()

	html, err := c.fetch(ctx, regionURL)
	if err != nil {
		logger.Warn("failed to fetch region", "url", regionURL, "err", err)
		return nil
	}

	links, err := c.Parser.ParseClinicLinks(html, c.BaseURL, seen.Seen)
	if err != nil {
		logger.Warn("failed to parse region", "url", regionURL, "err", err)
		return nil
	}

	logger.Info("found clinics in region", "url", regionURL, "count", len(links))
	return links
}

// ExtractDetails fetches and parses a single clinic page. A URL already in
// seen is not fetched and yields an ECONFLICT error. A successful fetch adds
// the URL to seen before extraction.
func (c *Crawler) ExtractDetails(ctx context.Context, clinicURL string, seen clinicdir.VisitedSet) (*clinicdir.Clinic, error) {
	if seen.Seen(clinicURL) {
		return nil, clinicdir.Errorf(clinicdir.ECONFLICT, "clinic already visited: %s", clinicURL)
	}

	html, err := c.fetch(ctx, clinicURL)
	if err != nil {
		return nil, err
	}
	seen.Add(clinicURL)

	return c.Parser.ParseClinic(html, clinicURL)
}

// extractSafely runs ExtractDetails and converts a panic into an EINTERNAL error.
func (c *Crawler) extractSafely(ctx context.Context, clinicURL string, seen clinicdir.VisitedSet) (clinic *clinicdir.Clinic, err error) {
	defer func() {
		if r := recover(); r != nil {
			clinic = nil
			err = clinicdir.Errorf(clinicdir.EINTERNAL, "panic extracting %s: %v", clinicURL, r)
		}
	}()
	return c.ExtractDetails(ctx, clinicURL, seen)
}

func (c *Crawler) fetch(ctx context.Context, url string) (string, error) {
	delays := c.RetryDelays
	if delays == nil {
		attempts := c.MaxRetries
		if attempts <= 0 {
			attempts = DefaultMaxRetries
		}
		delays = BackoffDelays(attempts, time.Second)
	}
	return FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, c.logger(), delays)
}

func (c *Crawler) listingURL() string {
	path := c.ListingPath
	if path == "" {
		path = DefaultListingPath
	}
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
