// Package scraper implements the crowd-data scrape-and-reconcile core: fetching
// occupancy readings from external sources, matching them to the gym catalog,
// and appending snapshots on a fixed interval.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// updatedLayout is the timestamp format used by the occupancy pages,
// e.g. "01/15/2025 03:12 PM".
const updatedLayout = "01/02/2006 03:04 PM"

// Reading is one parsed facility occupancy record.
type Reading struct {
	FacilityName   string
	Occupancy      int
	PercentageFull *float64 // nil when the page shows "NA"
	LastUpdated    time.Time
}

// FetchError is a typed per-source or per-facility failure. One FetchError
// never aborts the rest of the fetch.
type FetchError struct {
	Source   string
	Facility string
	Err      error
}

func (e FetchError) Error() string {
	if e.Facility != "" {
		return fmt.Sprintf("fetch %s facility %q: %v", e.Source, e.Facility, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }

// FetcherConfig holds tunables for the crowd-data fetcher.
type FetcherConfig struct {
	Sources   []string
	UserAgent string
	Timeout   time.Duration
	Location  *time.Location // used to parse page "Updated" timestamps
}

// Fetcher retrieves occupancy readings from the configured source pages. Each
// page lists facilities as div.barChart blocks.
type Fetcher struct {
	client    *http.Client
	sources   []string
	userAgent string
	loc       *time.Location
	logger    *slog.Logger
	now       func() time.Time
}

// NewFetcher constructs a Fetcher with an explicit per-request timeout.
func NewFetcher(cfg FetcherConfig, logger *slog.Logger) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		sources:   cfg.Sources,
		userAgent: cfg.UserAgent,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// Fetch retrieves readings from every configured source. Failures are isolated:
// a source that is down or a facility block that fails to parse is reported in
// the error slice while the remaining readings are still returned.
func (f *Fetcher) Fetch(ctx context.Context) ([]Reading, []FetchError) {
	var readings []Reading
	var failures []FetchError

	for _, source := range f.sources {
		if err := ctx.Err(); err != nil {
			failures = append(failures, FetchError{Source: source, Err: err})
			return readings, failures
		}

		sourceReadings, sourceFailures := f.fetchSource(ctx, source)
		readings = append(readings, sourceReadings...)
		failures = append(failures, sourceFailures...)
	}
	return readings, failures
}

func (f *Fetcher) fetchSource(ctx context.Context, source string) ([]Reading, []FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, []FetchError{{Source: source, Err: err}}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return nil, []FetchError{{Source: source, Err: err}}
	}
	defer resp.Body.Close()

	f.logger.Debug("crowd source fetched", "source", source, "status", resp.StatusCode, "duration_ms", duration.Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return nil, []FetchError{{Source: source, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, []FetchError{{Source: source, Err: fmt.Errorf("parse html: %w", err)}}
	}

	var readings []Reading
	var failures []FetchError
	doc.Find("div.barChart").Each(func(_ int, sel *goquery.Selection) {
		reading, err := f.parseFacility(sel)
		if err != nil {
			failures = append(failures, FetchError{Source: source, Facility: facilityLabel(sel), Err: err})
			return
		}
		readings = append(readings, reading)
	})

	if len(readings) == 0 && len(failures) == 0 {
		failures = append(failures, FetchError{Source: source, Err: fmt.Errorf("no facility blocks found")})
	}
	return readings, failures
}

// parseFacility extracts a Reading from one div.barChart block. The block text
// has the shape "<name> Last Count: <n> Updated: <ts>" with the fill percentage
// in a nested span.barChart__value.
func (f *Fetcher) parseFacility(sel *goquery.Selection) (Reading, error) {
	raw := strings.TrimSpace(sel.Text())

	name, rest, found := strings.Cut(raw, "Last Count:")
	if !found {
		return Reading{}, fmt.Errorf("missing Last Count marker")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Reading{}, fmt.Errorf("missing facility name")
	}

	countText, updatedText, found := strings.Cut(rest, "Updated:")
	if !found {
		updatedText = ""
	}
	countText = strings.TrimSpace(countText)

	occupancy := 0
	if countText != "" && countText != "NA" {
		parsed, err := strconv.Atoi(countText)
		if err != nil {
			return Reading{}, fmt.Errorf("invalid count %q: %w", countText, err)
		}
		if parsed < 0 {
			return Reading{}, fmt.Errorf("negative count %d", parsed)
		}
		occupancy = parsed
	}

	if line, _, ok := strings.Cut(updatedText, "\n"); ok {
		updatedText = line
	}
	updatedText = strings.TrimSpace(updatedText)

	lastUpdated := f.now().UTC()
	if updatedText != "" {
		parsed, err := time.ParseInLocation(updatedLayout, updatedText, f.loc)
		if err == nil {
			lastUpdated = parsed.UTC()
		}
	}

	var percentage *float64
	percentText := strings.TrimSpace(sel.Find("span.barChart__value").Text())
	percentText = strings.TrimSuffix(percentText, "%")
	if percentText != "" && percentText != "NA" {
		parsed, err := strconv.ParseFloat(percentText, 64)
		if err != nil {
			return Reading{}, fmt.Errorf("invalid percentage %q: %w", percentText, err)
		}
		// The source does not clamp: fractions above 1 are preserved.
		fraction := parsed / 100
		percentage = &fraction
	}

	return Reading{
		FacilityName:   name,
		Occupancy:      occupancy,
		PercentageFull: percentage,
		LastUpdated:    lastUpdated,
	}, nil
}

// facilityLabel extracts a best-effort facility name for error reporting.
func facilityLabel(sel *goquery.Selection) string {
	raw := strings.TrimSpace(sel.Text())
	name, _, _ := strings.Cut(raw, "Last Count:")
	name = strings.TrimSpace(name)
	if len(name) > 80 {
		name = name[:80]
	}
	return name
}
