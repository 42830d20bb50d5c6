package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twcweather/internal/models"
	"twcweather/internal/scrape"
	"twcweather/internal/twc"
)

type stubWeather struct {
	lastForecastReq scrape.ForecastRequest

	current    models.CurrentWeatherForecast
	currentErr error
	hourly     []models.HourlyWeatherForecast
	hourlyErr  error
	daily      []models.DailyWeatherForecast
	dailyErr   error
	locations  []models.Location
	searchErr  error
}

func (s *stubWeather) GetCurrentWeather(_ context.Context, req scrape.ForecastRequest) (models.CurrentWeatherForecast, error) {
	s.lastForecastReq = req
	return s.current, s.currentErr
}

func (s *stubWeather) GetHourlyWeather(_ context.Context, req scrape.ForecastRequest) ([]models.HourlyWeatherForecast, error) {
	s.lastForecastReq = req
	return s.hourly, s.hourlyErr
}

func (s *stubWeather) GetDailyWeather(_ context.Context, req scrape.ForecastRequest) ([]models.DailyWeatherForecast, error) {
	s.lastForecastReq = req
	return s.daily, s.dailyErr
}

func (s *stubWeather) SearchLocation(context.Context, string, string) ([]models.Location, error) {
	return s.locations, s.searchErr
}

func serve(t *testing.T, stub *stubWeather, target string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewServer(stub, ":0", slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleCurrentWeather(t *testing.T) {
	stub := &stubWeather{current: models.CurrentWeatherForecast{
		EpochTime:            1700000000000,
		Visibility:           "10",
		CurrentTemperature:   "64",
		MinTemperature:       "55",
		MaxTemperature:       "70",
		FeelsLikeTemperature: "62",
		IconName:             "Partly Cloudy",
		Link:                 "https://weather.com/en-US/weather/today/l/abc?unit=e",
	}}

	rec := serve(t, stub, "/weather/current/abc?language=en-US&unit_type=2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "abc", stub.lastForecastReq.PlaceID)
	assert.Equal(t, "en-US", stub.lastForecastReq.Language)
	assert.Equal(t, models.UnitImperial, stub.lastForecastReq.UnitType)

	var got CurrentWeatherView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1700000000000), got.EpochTime)
	assert.Equal(t, "64", got.CurrentTemperature)
	assert.Equal(t, "10", got.Visibility)
	assert.Equal(t, "Partly Cloudy", got.IconName)
}

func TestHandleCurrentWeatherMetricUnit(t *testing.T) {
	stub := &stubWeather{}
	serve(t, stub, "/weather/current/abc?language=uk-UA&unit_type=1")
	assert.Equal(t, models.UnitMetric, stub.lastForecastReq.UnitType)
}

func TestHandleCurrentWeatherMissingLanguage(t *testing.T) {
	rec := serve(t, &stubWeather{}, "/weather/current/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCurrentWeatherPlaceNotFound(t *testing.T) {
	stub := &stubWeather{currentErr: scrape.ErrPageNotFound}
	rec := serve(t, stub, "/weather/current/bogus?language=en-US")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHourlyWeather(t *testing.T) {
	stub := &stubWeather{hourly: []models.HourlyWeatherForecast{{
		CurrentTemperature:         "64",
		FeelsLikeTemperature:       "66",
		UVIndex:                    "7",
		ProbabilityOfPrecipitation: "12",
		PrecipitationType:          models.PrecipRain,
		AmountOfPrecipitation:      "0.2",
		Wind:                       models.Wind{Direction: "WSW", Speed: "6"},
		IconName:                   "Sunny",
	}}}

	rec := serve(t, stub, "/weather/hourly/abc?language=en-US")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []HourlyWeatherView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(0), got[0].EpochTime)
	assert.Equal(t, "rain", got[0].PrecipitationType)
	assert.Equal(t, WindView{Direction: "WSW", Speed: "6"}, got[0].Wind)
}

func TestHandleHourlyWeatherExtractionError(t *testing.T) {
	stub := &stubWeather{hourlyErr: &scrape.ExtractionError{
		Kind:     scrape.StructuralMismatch,
		Selector: "div",
	}}
	rec := serve(t, stub, "/weather/hourly/abc?language=en-US")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleDailyWeather(t *testing.T) {
	night := &models.DailyWeatherForecastDetail{
		Temperature:       "57",
		Humidity:          "70",
		RiseTime:          22320,
		SetTime:           71100,
		PrecipitationType: models.PrecipNone,
	}
	stub := &stubWeather{daily: []models.DailyWeatherForecast{{
		EpochTime: 1700000000000,
		Day:       nil,
		Night:     night,
	}}}

	rec := serve(t, stub, "/weather/daily/abc?language=en-US")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []DailyWeatherView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Day)
	require.NotNil(t, got[0].Night)
	assert.Equal(t, "57", got[0].Night.Temperature)
	assert.Equal(t, "none", got[0].Night.PrecipitationType)
	assert.Equal(t, 22320, got[0].Night.RiseTime)
}

func TestHandleSearchLocation(t *testing.T) {
	stub := &stubWeather{locations: []models.Location{{
		PlaceID:    "place-1",
		Address:    "Kyiv, Ukraine",
		City:       "Kyiv",
		Country:    "Ukraine",
		Latitude:   50.45,
		Longitude:  30.52,
		PostalCode: "01001",
	}}}

	rec := serve(t, stub, "/location/search?language=uk-UA&place_details=Kyiv")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []LocationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "place-1", got[0].PlaceID)
}

func TestHandleSearchLocationMissingParams(t *testing.T) {
	rec := serve(t, &stubWeather{}, "/location/search?language=uk-UA")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchLocationUpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "client error", err: &twc.ErrUpstreamClient{StatusCode: 400}},
		{name: "server error", err: &twc.ErrUpstreamServer{StatusCode: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubWeather{searchErr: tt.err}
			rec := serve(t, stub, "/location/search?language=en-US&place_details=x")
			assert.Equal(t, http.StatusBadGateway, rec.Code)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	rec := serve(t, &stubWeather{}, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
