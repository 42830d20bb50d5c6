package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"twcweather/internal/models"
	"twcweather/internal/scrape"
	"twcweather/internal/twc"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// forecastRequest builds the engine request from the URL. Language is
// required; unit_type is the integer code (1=metric, 2=imperial) and anything
// else, including absence, means imperial.
func forecastRequest(r *http.Request) (scrape.ForecastRequest, bool) {
	language := r.URL.Query().Get("language")
	if language == "" {
		return scrape.ForecastRequest{}, false
	}
	unitCode, _ := strconv.Atoi(r.URL.Query().Get("unit_type"))
	return scrape.ForecastRequest{
		PlaceID:  chi.URLParam(r, "placeID"),
		Language: language,
		UnitType: models.UnitTypeFromCode(unitCode),
	}, true
}

func (s *Server) handleCurrentWeather(w http.ResponseWriter, r *http.Request) {
	req, ok := forecastRequest(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "language query parameter is required"})
		return
	}

	forecast, err := s.weather.GetCurrentWeather(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, currentView(forecast))
}

func (s *Server) handleHourlyWeather(w http.ResponseWriter, r *http.Request) {
	req, ok := forecastRequest(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "language query parameter is required"})
		return
	}

	forecasts, err := s.weather.GetHourlyWeather(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hourlyViews(forecasts))
}

func (s *Server) handleDailyWeather(w http.ResponseWriter, r *http.Request) {
	req, ok := forecastRequest(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "language query parameter is required"})
		return
	}

	forecasts, err := s.weather.GetDailyWeather(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dailyViews(forecasts))
}

func (s *Server) handleSearchLocation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	language := query.Get("language")
	placeDetails := query.Get("place_details")
	if language == "" || placeDetails == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "language and place_details query parameters are required"})
		return
	}

	locations, err := s.weather.SearchLocation(r.Context(), language, placeDetails)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locationViews(locations))
}

// writeError maps engine errors onto HTTP statuses: an unknown place is the
// caller's 404; everything the upstream site broke (markup changes, search
// backend failures) is a 502.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		extraction *scrape.ExtractionError
		clientErr  *twc.ErrUpstreamClient
		serverErr  *twc.ErrUpstreamServer
	)
	switch {
	case errors.Is(err, scrape.ErrPageNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "place not found"})
	case errors.As(err, &extraction), errors.As(err, &clientErr), errors.As(err, &serverErr):
		s.logger.Error("upstream failure", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
