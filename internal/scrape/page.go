package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"twcweather/internal/metrics"
	"twcweather/internal/models"
)

// weather.com serves the same page layout under three interval paths.
const weatherURLFormat = "https://weather.com/%s/weather/%s/l/%s?unit=%s"

const (
	intervalCurrent = "today"
	intervalHourly  = "hourbyhour"
	intervalDaily   = "tenday"
)

// Unit codes on the weather.com backend. A hybrid code "h" also exists
// upstream but is never requested here.
const (
	metricUnitCode   = "m"
	imperialUnitCode = "e"
)

// Fetcher retrieves a page body by URL. Timeouts, rate limiting and any
// transient-error policy live behind this interface, not in the engine.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

func unitCode(unit models.UnitType) string {
	if unit == models.UnitMetric {
		return metricUnitCode
	}
	return imperialUnitCode
}

func forecastURL(language, interval, placeID string, unit models.UnitType) string {
	return fmt.Sprintf(weatherURLFormat, language, interval, placeID, unitCode(unit))
}

// fetchPage retrieves and parses one forecast page, failing fast with
// ErrPageNotFound when the body is the site's own not-found page. The guard
// runs once per fetch, before any field extraction.
func (s *Service) fetchPage(ctx context.Context, url, interval string) (*goquery.Document, error) {
	s.logger.Debug("fetching weather page", "url", url, "interval", interval)

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, url)
	metrics.PageFetchDuration.WithLabelValues(interval).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PageFetches.WithLabelValues(interval, "error").Inc()
		return nil, fmt.Errorf("fetch %s page: %w", interval, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		metrics.PageFetches.WithLabelValues(interval, "error").Inc()
		return nil, fmt.Errorf("parse %s page: %w", interval, err)
	}

	if doc.Find(s.selectors.NotFound).Length() > 0 {
		metrics.PageFetches.WithLabelValues(interval, "not_found").Inc()
		s.logger.Debug("weather page is the site's not-found page", "url", url)
		return nil, ErrPageNotFound
	}

	metrics.PageFetches.WithLabelValues(interval, "ok").Inc()
	return doc, nil
}
