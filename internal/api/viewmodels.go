package api

import (
	"twcweather/internal/models"
)

// JSON shapes for the REST facade. Field names follow the upstream service's
// contract: snake_case, measures as the site's own text, epochs in Unix
// milliseconds.

type WindView struct {
	Direction string `json:"direction"`
	Speed     string `json:"speed"`
}

type CurrentWeatherView struct {
	EpochTime            int64  `json:"epoch_time"`
	Visibility           string `json:"visibility"`
	CurrentTemperature   string `json:"current_temperature"`
	MinTemperature       string `json:"min_temperature"`
	MaxTemperature       string `json:"max_temperature"`
	FeelsLikeTemperature string `json:"feels_like_temperature"`
	IconName             string `json:"icon_name"`
	Link                 string `json:"link"`
}

type HourlyWeatherView struct {
	EpochTime                  int64    `json:"epoch_time"`
	CurrentTemperature         string   `json:"current_temperature"`
	FeelsLikeTemperature       string   `json:"feels_like_temperature"`
	UVIndex                    string   `json:"uv_index"`
	ProbabilityOfPrecipitation string   `json:"probability_of_precipitation"`
	PrecipitationType          string   `json:"precipitation_type"`
	AmountOfPrecipitation      string   `json:"amount_of_precipitation"`
	Wind                       WindView `json:"wind"`
	Icon                       string   `json:"icon"`
	Link                       string   `json:"link"`
}

type DailyWeatherDetailView struct {
	Temperature                string   `json:"temperature"`
	Humidity                   string   `json:"humidity"`
	Wind                       WindView `json:"wind"`
	RiseTime                   int      `json:"rise_time"`
	SetTime                    int      `json:"set_time"`
	ProbabilityOfPrecipitation string   `json:"probability_of_precipitation"`
	PrecipitationType          string   `json:"precipitation_type"`
	IconName                   string   `json:"icon_name"`
}

type DailyWeatherView struct {
	EpochTime int64                   `json:"epoch_time"`
	Day       *DailyWeatherDetailView `json:"day"`
	Night     *DailyWeatherDetailView `json:"night"`
	Link      string                  `json:"link"`
}

type LocationView struct {
	PlaceID    string  `json:"place_id"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PostalCode string  `json:"postal_code"`
}

func windView(w models.Wind) WindView {
	return WindView{Direction: w.Direction, Speed: w.Speed}
}

func currentView(f models.CurrentWeatherForecast) CurrentWeatherView {
	return CurrentWeatherView{
		EpochTime:            f.EpochTime,
		Visibility:           f.Visibility,
		CurrentTemperature:   f.CurrentTemperature,
		MinTemperature:       f.MinTemperature,
		MaxTemperature:       f.MaxTemperature,
		FeelsLikeTemperature: f.FeelsLikeTemperature,
		IconName:             f.IconName,
		Link:                 f.Link,
	}
}

func hourlyViews(forecasts []models.HourlyWeatherForecast) []HourlyWeatherView {
	views := make([]HourlyWeatherView, 0, len(forecasts))
	for _, f := range forecasts {
		views = append(views, HourlyWeatherView{
			EpochTime:                  f.EpochTime,
			CurrentTemperature:         f.CurrentTemperature,
			FeelsLikeTemperature:       f.FeelsLikeTemperature,
			UVIndex:                    f.UVIndex,
			ProbabilityOfPrecipitation: f.ProbabilityOfPrecipitation,
			PrecipitationType:          f.PrecipitationType.String(),
			AmountOfPrecipitation:      f.AmountOfPrecipitation,
			Wind:                       windView(f.Wind),
			Icon:                       f.IconName,
			Link:                       f.Link,
		})
	}
	return views
}

func dailyDetailView(d *models.DailyWeatherForecastDetail) *DailyWeatherDetailView {
	if d == nil {
		return nil
	}
	return &DailyWeatherDetailView{
		Temperature:                d.Temperature,
		Humidity:                   d.Humidity,
		Wind:                       windView(d.Wind),
		RiseTime:                   d.RiseTime,
		SetTime:                    d.SetTime,
		ProbabilityOfPrecipitation: d.ProbabilityOfPrecipitation,
		PrecipitationType:          d.PrecipitationType.String(),
		IconName:                   d.IconName,
	}
}

func dailyViews(forecasts []models.DailyWeatherForecast) []DailyWeatherView {
	views := make([]DailyWeatherView, 0, len(forecasts))
	for _, f := range forecasts {
		views = append(views, DailyWeatherView{
			EpochTime: f.EpochTime,
			Day:       dailyDetailView(f.Day),
			Night:     dailyDetailView(f.Night),
			Link:      f.Link,
		})
	}
	return views
}

func locationViews(locations []models.Location) []LocationView {
	views := make([]LocationView, 0, len(locations))
	for _, l := range locations {
		views = append(views, LocationView{
			PlaceID:    l.PlaceID,
			Address:    l.Address,
			City:       l.City,
			Country:    l.Country,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
			PostalCode: l.PostalCode,
		})
	}
	return views
}
