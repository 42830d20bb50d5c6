// Package api exposes the scraping engine over REST.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twcweather/internal/models"
	"twcweather/internal/scrape"
)

// WeatherService is what the facade needs from the engine.
type WeatherService interface {
	GetCurrentWeather(ctx context.Context, req scrape.ForecastRequest) (models.CurrentWeatherForecast, error)
	GetHourlyWeather(ctx context.Context, req scrape.ForecastRequest) ([]models.HourlyWeatherForecast, error)
	GetDailyWeather(ctx context.Context, req scrape.ForecastRequest) ([]models.DailyWeatherForecast, error)
	SearchLocation(ctx context.Context, language, placeDetails string) ([]models.Location, error)
}

type Server struct {
	weather WeatherService
	addr    string
	logger  *slog.Logger
}

func NewServer(weather WeatherService, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{weather: weather, addr: addr, logger: logger}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/weather", func(r chi.Router) {
		r.Get("/current/{placeID}", s.handleCurrentWeather)
		r.Get("/hourly/{placeID}", s.handleHourlyWeather)
		r.Get("/daily/{placeID}", s.handleDailyWeather)
	})
	r.Get("/location/search", s.handleSearchLocation)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", "addr", s.addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
