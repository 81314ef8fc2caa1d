package goquery_test

import (
	"testing"

	"github.com/fwojciec/clinicdir"
	"github.com/fwojciec/clinicdir/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://example.com"

func TestParser_ParseRegions(t *testing.T) {
	t.Parallel()

	t.Run("prefers region list over generic links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/our-clinics/regions/footer-only/">Footer Region</a></nav>
<div class="region-list">
	<a href="/our-clinics/regions/queensland/">Queensland</a>
	<a href="/our-clinics/regions/victoria/">Victoria</a>
</div>
</body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		assert.Equal(t, []clinicdir.Region{
			{Name: "Queensland", URL: "https://example.com/our-clinics/regions/queensland/"},
			{Name: "Victoria", URL: "https://example.com/our-clinics/regions/victoria/"},
		}, regions)
	})

	t.Run("falls back through selectors in priority order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="clinic-regions"><a href="/our-clinics/regions/tasmania/">Tasmania</a></div>
<div class="regional-box"><a href="/our-clinics/regions/act/">ACT</a></div>
</body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Equal(t, "Tasmania", regions[0].Name)
	})

	t.Run("uses class substring match before generic links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/our-clinics/regions/nsw/">NSW</a>
<section class="our-regions-grid"><a href="/our-clinics/regions/wa/">WA</a></section>
</body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Equal(t, "WA", regions[0].Name)
	})

	t.Run("falls back to any region link", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/about/">About</a>
<a href="/our-clinics/regions/south-australia/">South Australia</a>
</body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Equal(t, "https://example.com/our-clinics/regions/south-australia/", regions[0].URL)
	})

	t.Run("deduplicates by absolute URL keeping first occurrence", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="region-list">
	<a href="/our-clinics/regions/queensland/">Queensland</a>
	<a href="https://example.com/our-clinics/regions/queensland/">QLD again</a>
	<a href="/our-clinics/regions/victoria/">Victoria</a>
</div></body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 2)
		assert.Equal(t, "Queensland", regions[0].Name)
		assert.Equal(t, "Victoria", regions[1].Name)
	})

	t.Run("derives name from URL when link text is empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="region-list">
	<a href="/our-clinics/regions/new-south-wales/"><img src="nsw.png"></a>
	<a href="/our-clinics/regions/northern-territory"> </a>
</div></body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 2)
		assert.Equal(t, "New South Wales", regions[0].Name)
		assert.Equal(t, "Northern Territory", regions[1].Name)
	})

	t.Run("collapses whitespace in link text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="region-list">
	<a href="/our-clinics/regions/qld/">
		Queensland
		<small>North</small>
	</a>
</div></body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, baseURL)

		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Equal(t, "Queensland North", regions[0].Name)
	})

	t.Run("resolves relative links against base path", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="region-list">
	<a href="/web/2025/https://www.example.com.au/our-clinics/regions/queensland/">Queensland</a>
</div></body></html>`

		regions, err := goquery.NewParser().ParseRegions(html, "https://web.archive.org/web/2025/https://www.example.com.au")

		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Equal(t, "https://web.archive.org/web/2025/https://www.example.com.au/our-clinics/regions/queensland/", regions[0].URL)
	})

	t.Run("returns empty result when nothing matches", func(t *testing.T) {
		t.Parallel()

		regions, err := goquery.NewParser().ParseRegions(`<html><body><a href="/about/">About</a></body></html>`, baseURL)

		require.NoError(t, err)
		assert.Empty(t, regions)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="region-list">
	<a href="/our-clinics/regions/b/">B</a>
	<a href="/our-clinics/regions/a/">A</a>
</div></body></html>`

		p := goquery.NewParser()
		first, err := p.ParseRegions(html, baseURL)
		require.NoError(t, err)
		second, err := p.ParseRegions(html, baseURL)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().ParseRegions("<html></html>", "://bad")

		require.Error(t, err)
		assert.Equal(t, clinicdir.EINVALID, clinicdir.ErrorCode(err))
	})
}
