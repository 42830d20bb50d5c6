// Package twc wraps the weather.com "redux-dal" aggregation endpoint.
package twc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"twcweather/internal/metrics"
)

// DefaultEndpoint is the single redux-dal URL multiplexing many upstream
// methods; the method name goes in the request body.
const DefaultEndpoint = "https://weather.com/api/v1/p/redux-dal"

const (
	searchMethodName   = "getSunV3LocationSearchUrlConfig"
	searchLocationType = "locale"
)

// ErrUpstreamClient means redux-dal answered with a 4xx status: the query
// itself was rejected.
type ErrUpstreamClient struct {
	StatusCode int
}

func (e *ErrUpstreamClient) Error() string {
	return fmt.Sprintf("redux-dal rejected the request: status %d", e.StatusCode)
}

// ErrUpstreamServer means redux-dal answered with a 5xx status.
type ErrUpstreamServer struct {
	StatusCode int
}

func (e *ErrUpstreamServer) Error() string {
	return fmt.Sprintf("redux-dal server error: status %d", e.StatusCode)
}

// SearchedLocation is one place from a location search, as redux-dal
// describes it.
type SearchedLocation struct {
	Address       string
	AdminDistrict string
	City          string
	Country       string
	CountryCode   string
	DisplayName   string
	IANATimeZone  string
	Latitude      float64
	Longitude     float64
	PlaceID       string
	PostalCode    string
}

// Client calls the weather.com backend.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// NewClient creates a redux-dal client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client, endpoint string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, endpoint: endpoint, logger: logger}
}

type searchRequest struct {
	Name   string       `json:"name"`
	Params searchParams `json:"params"`
}

type searchParams struct {
	Language     string `json:"language"`
	LocationType string `json:"locationType"`
	Query        string `json:"query"`
}

// The response keys every method result by a serialized copy of its own
// parameters, and the location payload is a struct of parallel arrays.
type searchResponse struct {
	DAL map[string]map[string]searchResult `json:"dal"`
}

type searchResult struct {
	Data struct {
		Location locationColumns `json:"location"`
	} `json:"data"`
}

type locationColumns struct {
	Address       []string  `json:"address"`
	AdminDistrict []string  `json:"adminDistrict"`
	City          []string  `json:"city"`
	Country       []string  `json:"country"`
	CountryCode   []string  `json:"countryCode"`
	DisplayName   []string  `json:"displayName"`
	IANATimeZone  []string  `json:"ianaTimeZone"`
	Latitude      []float64 `json:"latitude"`
	Longitude     []float64 `json:"longitude"`
	PlaceID       []string  `json:"placeId"`
	PostalCode    []string  `json:"postalCode"`
}

// Search finds places matching free-text detail (city name, postal code,
// address) and returns them in the upstream's order. The query text can be
// anything the site's own search box accepts.
func (c *Client) Search(ctx context.Context, language, placeDetail string) ([]SearchedLocation, error) {
	body, err := json.Marshal([]searchRequest{{
		Name: searchMethodName,
		Params: searchParams{
			Language:     language,
			LocationType: searchLocationType,
			Query:        placeDetail,
		},
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("searching locations via redux-dal", "language", language, "query", placeDetail)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.LocationSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("post redux-dal: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		metrics.LocationSearches.WithLabelValues("client_error").Inc()
		return nil, &ErrUpstreamClient{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 500:
		metrics.LocationSearches.WithLabelValues("server_error").Inc()
		return nil, &ErrUpstreamServer{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.LocationSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read redux-dal response: %w", err)
	}

	var decoded searchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		metrics.LocationSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode redux-dal response: %w", err)
	}

	key := fmt.Sprintf("language:%s;locationType:%s;query:%s", language, searchLocationType, placeDetail)
	result, ok := decoded.DAL[searchMethodName][key]
	if !ok {
		metrics.LocationSearches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("redux-dal response missing result for key %q", key)
	}

	locations := columnsToLocations(result.Data.Location)
	metrics.LocationSearches.WithLabelValues("ok").Inc()
	c.logger.Debug("location search finished", "results", len(locations))
	return locations, nil
}

// columnsToLocations rows out the parallel arrays. The address column drives
// the length; a shorter sibling column yields zero values for its tail.
func columnsToLocations(cols locationColumns) []SearchedLocation {
	locations := make([]SearchedLocation, 0, len(cols.Address))
	for i := range cols.Address {
		locations = append(locations, SearchedLocation{
			Address:       cols.Address[i],
			AdminDistrict: stringAt(cols.AdminDistrict, i),
			City:          stringAt(cols.City, i),
			Country:       stringAt(cols.Country, i),
			CountryCode:   stringAt(cols.CountryCode, i),
			DisplayName:   stringAt(cols.DisplayName, i),
			IANATimeZone:  stringAt(cols.IANATimeZone, i),
			Latitude:      floatAt(cols.Latitude, i),
			Longitude:     floatAt(cols.Longitude, i),
			PlaceID:       stringAt(cols.PlaceID, i),
			PostalCode:    stringAt(cols.PostalCode, i),
		})
	}
	return locations
}

func stringAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
