package scrape

// SelectorSet is the contract between this engine and weather.com's rendered
// markup. The site ships hashed CSS module class names, so every selector
// matches on a stable class-name prefix plus data-testid attributes. When the
// site redesigns, this table is what changes, not the extraction code.
type SelectorSet struct {
	NotFound string

	CurrentFeelsLikeTemperature string
	CurrentTemperature          string
	CurrentMaxTemperature       string
	CurrentMinTemperature       string
	CurrentIconName             string
	CurrentVisibility           string

	HourlySummaryBlock               string
	HourlyDetailBlock                string
	HourlyTemperature                string
	HourlyFeelsLikeTemperature       string
	HourlyUVIndex                    string
	HourlyProbabilityOfPrecipitation string
	HourlyAmountOfPrecipitation      string
	HourlyIconName                   string
	HourlyPrecipitationType          string

	DailyLastUpdated                string
	DailySummaryBlock               string
	DailyDetailBlock                string
	DailyTemperature                string
	DailyProbabilityOfPrecipitation string
	DailyHumidity                   string
	DailyRiseSetTime                string
	DailyIconName                   string
	DailyPrecipitationType          string
	DailyDay                        string

	Wind string
}

// DefaultSelectors matches weather.com's markup as observed. Loaded once and
// shared; the set is immutable after construction.
func DefaultSelectors() SelectorSet {
	return SelectorSet{
		NotFound: `div[class*="NotFound--notFound--"]`,

		CurrentFeelsLikeTemperature: `span[class*="TodayDetailsCard--feelsLikeTempValue--"][data-testid="TemperatureValue"]`,
		CurrentTemperature:          `span[class*="CurrentConditions--tempValue--"][data-testid="TemperatureValue"]`,
		CurrentMaxTemperature:       `div[class*="CurrentConditions--tempHiLoValue"] > span[data-testid="TemperatureValue"]:first-child`,
		CurrentMinTemperature:       `div[class*="CurrentConditions--tempHiLoValue"] > span[data-testid="TemperatureValue"]:last-child`,
		CurrentIconName:             `span[class*="Icon--iconWrapper"] > svg[class*="CurrentConditions--wxIcon"] > title`,
		CurrentVisibility:           `span[data-testid="VisibilityValue"] > span`,

		HourlySummaryBlock:               `div[class*="DetailsSummary--DetailsSummary--"][data-testid="DetailsSummary"]`,
		HourlyDetailBlock:                `ul[class*="DetailsTable--DetailsTable--"]`,
		HourlyTemperature:                `span[class*="DetailsSummary--tempValue--"]`,
		HourlyFeelsLikeTemperature:       `span[class*="DetailsTable--value--"][data-testid="TemperatureValue"]`,
		HourlyUVIndex:                    `span[class*="DetailsTable--value--"][data-testid="UVIndexValue"]`,
		HourlyProbabilityOfPrecipitation: `div[class*="DetailsSummary--precip--"] > span[data-testid="PercentageValue"]`,
		HourlyAmountOfPrecipitation:      `li[class*="DetailsTable--listItem--"][data-testid="AccumulationSection"] > div > span > span:first-child`,
		HourlyIconName:                   `svg[class*="DetailsSummary--wxIcon--"] > title`,
		HourlyPrecipitationType:          `li[class*="DetailsTable--listItem--"][data-testid="AccumulationSection"] > span > svg[class*="DetailsTable--icon--"] > title`,

		DailyLastUpdated:                `div[class*="DailyForecast--timestamp--"]`,
		DailySummaryBlock:               `div[class*="DetailsSummary--DetailsSummary--"]`,
		DailyDetailBlock:                `div[class*="DaypartDetails--Content--"]`,
		DailyTemperature:                `span[class*="DailyContent--temp--"][data-testid="TemperatureValue"]`,
		DailyProbabilityOfPrecipitation: `span[class*="DailyContent--value--"][data-testid="PercentageValue"]`,
		DailyHumidity:                   `div[class*="DetailsTable--field--"] > span[class*="DetailsTable--value--"][data-testid="PercentageValue"]`,
		DailyRiseSetTime:                `div[class*="DetailsTable--field--"] > span[class*="DetailsTable--value--"]:not([data-testid="PercentageValue"]):not([data-testid="UVIndexValue"])`,
		DailyIconName:                   `svg[class*="DailyContent--weatherIcon--"] > title`,
		DailyPrecipitationType:          `svg[class*="DailyContent--precipIcon--"] > title`,
		DailyDay:                        `span[class*="DailyContent--daypartDate--"]`,

		Wind: `span[class*="Wind--windWrapper--"][data-testid="Wind"]`,
	}
}
