// Package scrape turns weather.com's rendered forecast pages into typed
// forecast records. The pages are located by interval (today, hourbyhour,
// tenday), checked against the site's not-found sentinel, and picked apart
// with the CSS selector table in selectors.go.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"twcweather/internal/metrics"
	"twcweather/internal/models"
	"twcweather/internal/twc"
)

// Day-part sub-indexes within one daily detail block.
const (
	dayPartIndex   = 0
	nightPartIndex = 1
)

// ForecastRequest identifies one forecast lookup. PlaceID is the opaque
// identifier returned by SearchLocation; Language is a BCP 47 tag like
// "en-US" or "uk-UA".
type ForecastRequest struct {
	PlaceID  string
	Language string
	UnitType models.UnitType
}

// LocationSearcher is the external place-search collaborator.
type LocationSearcher interface {
	Search(ctx context.Context, language, placeDetail string) ([]twc.SearchedLocation, error)
}

// Service assembles forecasts from fetched pages. It holds no caches and no
// mutable state; every call is one fetch, one parse, one record set.
type Service struct {
	fetcher   Fetcher
	searcher  LocationSearcher
	selectors SelectorSet
	clock     clockwork.Clock
	logger    *slog.Logger
}

// NewService wires the scraping engine to its collaborators. A nil clock
// falls back to the wall clock, a nil logger to slog.Default.
func NewService(fetcher Fetcher, searcher LocationSearcher, clock clockwork.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher:   fetcher,
		searcher:  searcher,
		selectors: DefaultSelectors(),
		clock:     clock,
		logger:    logger,
	}
}

// GetCurrentWeather scrapes the "today" page into a snapshot of conditions
// right now. EpochTime is stamped at extraction time; the page itself does
// not carry a usable capture instant.
func (s *Service) GetCurrentWeather(ctx context.Context, req ForecastRequest) (models.CurrentWeatherForecast, error) {
	url := forecastURL(req.Language, intervalCurrent, req.PlaceID, req.UnitType)
	doc, err := s.fetchPage(ctx, url, intervalCurrent)
	if err != nil {
		return models.CurrentWeatherForecast{}, err
	}

	sel := s.selectors
	root := doc.Selection

	feelsLike, err := temperature(root, sel.CurrentFeelsLikeTemperature, 0)
	if err != nil {
		return models.CurrentWeatherForecast{}, s.extractionFailed(err)
	}
	current, err := temperature(root, sel.CurrentTemperature, 0)
	if err != nil {
		return models.CurrentWeatherForecast{}, s.extractionFailed(err)
	}
	minTemp, err := temperature(root, sel.CurrentMinTemperature, 0)
	if err != nil {
		return models.CurrentWeatherForecast{}, s.extractionFailed(err)
	}
	maxTemp, err := temperature(root, sel.CurrentMaxTemperature, 0)
	if err != nil {
		return models.CurrentWeatherForecast{}, s.extractionFailed(err)
	}
	iconName, err := textAt(root, sel.CurrentIconName, 0)
	if err != nil {
		return models.CurrentWeatherForecast{}, s.extractionFailed(err)
	}

	forecast := models.CurrentWeatherForecast{
		EpochTime:            s.clock.Now().UnixMilli(),
		Visibility:           visibility(root, sel.CurrentVisibility),
		CurrentTemperature:   current,
		MinTemperature:       minTemp,
		MaxTemperature:       maxTemp,
		FeelsLikeTemperature: feelsLike,
		IconName:             iconName,
		Link:                 url,
	}
	s.logger.Info("assembled current weather forecast", "place_id", req.PlaceID)
	return forecast, nil
}

// GetHourlyWeather scrapes the "hourbyhour" page. Each record is zipped from
// one summary block and the detail table at the same index; the page renders
// these pairwise, so unequal counts mean the markup changed underneath us.
func (s *Service) GetHourlyWeather(ctx context.Context, req ForecastRequest) ([]models.HourlyWeatherForecast, error) {
	url := forecastURL(req.Language, intervalHourly, req.PlaceID, req.UnitType)
	doc, err := s.fetchPage(ctx, url, intervalHourly)
	if err != nil {
		return nil, err
	}

	sel := s.selectors
	summaries := doc.Find(sel.HourlySummaryBlock)
	details := doc.Find(sel.HourlyDetailBlock)
	if summaries.Length() != details.Length() {
		err := structuralMismatch(sel.HourlySummaryBlock,
			fmt.Sprintf("%d summary blocks vs %d detail blocks", summaries.Length(), details.Length()))
		return nil, s.extractionFailed(err)
	}

	forecasts := make([]models.HourlyWeatherForecast, 0, summaries.Length())
	for i := 0; i < summaries.Length(); i++ {
		forecast, err := s.hourlyForecast(summaries.Eq(i), details.Eq(i), url)
		if err != nil {
			return nil, s.extractionFailed(fmt.Errorf("hour %d: %w", i, err))
		}
		forecasts = append(forecasts, forecast)
	}

	s.logger.Info("assembled hourly weather forecast", "place_id", req.PlaceID, "hours", len(forecasts))
	return forecasts, nil
}

func (s *Service) hourlyForecast(summary, detail *goquery.Selection, url string) (models.HourlyWeatherForecast, error) {
	sel := s.selectors

	current, err := temperature(summary, sel.HourlyTemperature, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}
	feelsLike, err := temperature(detail, sel.HourlyFeelsLikeTemperature, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}
	uv, err := uvIndex(detail, sel.HourlyUVIndex, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}
	pop, err := percent(summary, sel.HourlyProbabilityOfPrecipitation, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}
	amount, err := textAt(detail, sel.HourlyAmountOfPrecipitation, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}
	windReading, err := wind(detail, sel.Wind, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}
	iconName, err := textAt(summary, sel.HourlyIconName, 0)
	if err != nil {
		return models.HourlyWeatherForecast{}, err
	}

	return models.HourlyWeatherForecast{
		// TODO: derive an epoch from the block's hour label; the label alone
		// has no date or zone, so it stays 0 until a reliable source of the
		// absolute hour is found in the markup.
		EpochTime:                  0,
		CurrentTemperature:         current,
		FeelsLikeTemperature:       feelsLike,
		UVIndex:                    uv,
		ProbabilityOfPrecipitation: pop,
		PrecipitationType:          precipitationType(detail, sel.HourlyPrecipitationType, 0),
		AmountOfPrecipitation:      amount,
		Wind:                       windReading,
		IconName:                   iconName,
		Link:                       url,
	}, nil
}

// GetDailyWeather scrapes the "tenday" page. Between 15:00 and 03:00 local
// time the site drops the day half of the first entry, so the first record
// may carry only a night part. Epochs are reconstructed from the page's
// day-of-month and last-updated time plus the device's current year/month,
// then advanced one day per full entry.
func (s *Service) GetDailyWeather(ctx context.Context, req ForecastRequest) ([]models.DailyWeatherForecast, error) {
	url := forecastURL(req.Language, intervalDaily, req.PlaceID, req.UnitType)
	doc, err := s.fetchPage(ctx, url, intervalDaily)
	if err != nil {
		return nil, err
	}

	sel := s.selectors
	summaries := doc.Find(sel.DailySummaryBlock)
	details := doc.Find(sel.DailyDetailBlock)
	if summaries.Length() != details.Length() {
		err := structuralMismatch(sel.DailySummaryBlock,
			fmt.Sprintf("%d summary blocks vs %d detail blocks", summaries.Length(), details.Length()))
		return nil, s.extractionFailed(err)
	}
	if details.Length() == 0 {
		return nil, s.extractionFailed(missingField(sel.DailyDetailBlock))
	}

	dayText, err := textAt(details.Eq(0), sel.DailyDay, 0)
	if err != nil {
		return nil, s.extractionFailed(err)
	}
	dayOfMonth, err := parseDayOfMonth(dayText)
	if err != nil {
		return nil, s.extractionFailed(missingFieldDetail(sel.DailyDay, err.Error()))
	}

	lastUpdatedText, err := textAt(doc.Selection, sel.DailyLastUpdated, 0)
	if err != nil {
		return nil, s.extractionFailed(err)
	}
	lastUpdated, err := parseLastUpdated(lastUpdatedText)
	if err != nil {
		return nil, s.extractionFailed(missingFieldDetail(sel.DailyLastUpdated, err.Error()))
	}

	epoch := firstDailyEpoch(s.clock.Now(), dayOfMonth, lastUpdated)

	forecasts := make([]models.DailyWeatherForecast, 0, details.Length())
	start := 0
	if isNightWindow(lastUpdated.Seconds()) {
		// The first block holds a single day-part at sub-index 0, which in
		// this window is the night forecast. The running epoch is not
		// advanced here: the page dates this entry and the next one the same.
		night, err := s.dayPartForecast(details.Eq(0), dayPartIndex)
		if err != nil {
			return nil, s.extractionFailed(fmt.Errorf("day 0 (night only): %w", err))
		}
		forecasts = append(forecasts, models.DailyWeatherForecast{
			EpochTime: epoch,
			Day:       nil,
			Night:     night,
			Link:      url,
		})
		start = 1
	}

	for i := start; i < details.Length(); i++ {
		day, err := s.dayPartForecast(details.Eq(i), dayPartIndex)
		if err != nil {
			return nil, s.extractionFailed(fmt.Errorf("day %d: %w", i, err))
		}
		night, err := s.dayPartForecast(details.Eq(i), nightPartIndex)
		if err != nil {
			return nil, s.extractionFailed(fmt.Errorf("day %d (night): %w", i, err))
		}
		forecasts = append(forecasts, models.DailyWeatherForecast{
			EpochTime: epoch,
			Day:       day,
			Night:     night,
			Link:      url,
		})
		epoch += millisPerDay
	}

	s.logger.Info("assembled daily weather forecast", "place_id", req.PlaceID, "days", len(forecasts))
	return forecasts, nil
}

// dayPartForecast extracts one day-part from a daily detail block. The same
// block holds both halves of the day; subIndex selects which one.
func (s *Service) dayPartForecast(detail *goquery.Selection, subIndex int) (*models.DailyWeatherForecastDetail, error) {
	sel := s.selectors

	temp, err := temperature(detail, sel.DailyTemperature, subIndex)
	if err != nil {
		return nil, err
	}
	humidity, err := percent(detail, sel.DailyHumidity, subIndex)
	if err != nil {
		return nil, err
	}
	windReading, err := wind(detail, sel.Wind, subIndex)
	if err != nil {
		return nil, err
	}
	riseSet, err := celestial(detail, sel.DailyRiseSetTime)
	if err != nil {
		return nil, err
	}
	pop, err := percent(detail, sel.DailyProbabilityOfPrecipitation, subIndex)
	if err != nil {
		return nil, err
	}
	iconName, err := textAt(detail, sel.DailyIconName, subIndex)
	if err != nil {
		return nil, err
	}

	return &models.DailyWeatherForecastDetail{
		Temperature:                temp,
		Humidity:                   humidity,
		Wind:                       windReading,
		RiseTime:                   riseSet.RiseTime,
		SetTime:                    riseSet.SetTime,
		ProbabilityOfPrecipitation: pop,
		PrecipitationType:          precipitationType(detail, sel.DailyPrecipitationType, subIndex),
		IconName:                   iconName,
	}, nil
}

// SearchLocation resolves free-text place details (city name, postal code,
// address) into place records, including the PlaceID the forecast lookups
// need. The work is delegated to the redux-dal collaborator; only the field
// shape changes here.
func (s *Service) SearchLocation(ctx context.Context, language, placeDetails string) ([]models.Location, error) {
	found, err := s.searcher.Search(ctx, language, placeDetails)
	if err != nil {
		return nil, fmt.Errorf("search location: %w", err)
	}

	locations := make([]models.Location, 0, len(found))
	for _, loc := range found {
		locations = append(locations, models.Location{
			PlaceID:    loc.PlaceID,
			Address:    loc.Address,
			City:       loc.City,
			Country:    loc.Country,
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
			PostalCode: loc.PostalCode,
		})
	}
	s.logger.Info("location search finished", "query", placeDetails, "results", len(locations))
	return locations, nil
}

// extractionFailed counts and logs a failed extraction before handing the
// error back to the caller.
func (s *Service) extractionFailed(err error) error {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		metrics.ExtractionErrors.WithLabelValues(string(extractionErr.Kind)).Inc()
	}
	s.logger.Error("extraction failed", "error", err)
	return err
}
