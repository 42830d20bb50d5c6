package models

// UnitType is the measurement system requested by the caller.
type UnitType int

const (
	UnitMetric UnitType = iota + 1
	UnitImperial
)

// UnitTypeFromCode maps the REST facade's integer code (1=metric, 2=imperial)
// onto a UnitType. Anything unrecognized falls back to imperial, mirroring
// weather.com's own default.
func UnitTypeFromCode(code int) UnitType {
	if code == int(UnitMetric) {
		return UnitMetric
	}
	return UnitImperial
}

// PrecipitationType classifies precipitation from the page's icon titles.
type PrecipitationType int

const (
	PrecipNone PrecipitationType = iota
	PrecipRain
	PrecipSnow
	PrecipMixed
	PrecipIce
)

func (p PrecipitationType) String() string {
	switch p {
	case PrecipRain:
		return "rain"
	case PrecipSnow:
		return "snow"
	case PrecipMixed:
		return "mixed"
	case PrecipIce:
		return "ice"
	default:
		return "none"
	}
}

// Wind is an instantaneous wind reading. Direction is a compass string with
// the page's trailing unit glyph already stripped; speed is the page's numeric
// text, unconverted.
type Wind struct {
	Direction string
	Speed     string
}

// Celestial is a rise/set pair for one day-part, in seconds since local
// midnight.
type Celestial struct {
	RiseTime int
	SetTime  int
}

// CurrentWeatherForecast is the "now" snapshot. EpochTime is the capture
// instant in Unix milliseconds, not a page value. Visibility is "0" when the
// page renders it as unlimited.
type CurrentWeatherForecast struct {
	EpochTime            int64
	Visibility           string
	CurrentTemperature   string
	MinTemperature       string
	MaxTemperature       string
	FeelsLikeTemperature string
	IconName             string
	Link                 string
}

// HourlyWeatherForecast is one future hour. EpochTime is 0: the page's hour
// label has no reliable absolute-instant mapping yet.
type HourlyWeatherForecast struct {
	EpochTime                  int64
	CurrentTemperature         string
	FeelsLikeTemperature       string
	UVIndex                    string
	ProbabilityOfPrecipitation string
	PrecipitationType          PrecipitationType
	AmountOfPrecipitation      string
	Wind                       Wind
	IconName                   string
	Link                       string
}

// DailyWeatherForecastDetail is one day-part (day or night) of a daily entry.
type DailyWeatherForecastDetail struct {
	Temperature                string
	Humidity                   string
	Wind                       Wind
	RiseTime                   int
	SetTime                    int
	ProbabilityOfPrecipitation string
	PrecipitationType          PrecipitationType
	IconName                   string
}

// DailyWeatherForecast is one calendar day. Day is nil only on the leading
// night-only entry the page serves between 15:00 and 03:00 local time.
type DailyWeatherForecast struct {
	EpochTime int64
	Day       *DailyWeatherForecastDetail
	Night     *DailyWeatherForecastDetail
	Link      string
}

// Location is one place from the location search.
type Location struct {
	PlaceID    string
	Address    string
	City       string
	Country    string
	Latitude   float64
	Longitude  float64
	PostalCode string
}
