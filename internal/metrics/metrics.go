package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twcweather_page_fetches_total",
			Help: "Total forecast pages fetched from weather.com",
		},
		[]string{"interval", "outcome"},
	)

	PageFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "twcweather_page_fetch_duration_seconds",
			Help:    "Time spent fetching one forecast page",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"interval"},
	)

	ExtractionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twcweather_extraction_errors_total",
			Help: "Field extraction failures, usually a site markup change",
		},
		[]string{"kind"},
	)

	LocationSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twcweather_location_searches_total",
			Help: "Total location searches against the redux-dal endpoint",
		},
		[]string{"outcome"},
	)
)
