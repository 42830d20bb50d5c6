package scrape

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"twcweather/internal/models"
)

func mustParse(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.Selection
}

func TestTextAt(t *testing.T) {
	root := mustParse(t, `<div><span class="v">one</span><span class="v"> two </span></div>`)

	got, err := textAt(root, "span.v", 1)
	if err != nil {
		t.Fatalf("textAt: %v", err)
	}
	if got != "two" {
		t.Errorf("textAt index 1 = %q, want %q", got, "two")
	}
}

func TestTextAtMissingSelector(t *testing.T) {
	root := mustParse(t, `<div><span class="v">one</span></div>`)

	tests := []struct {
		name     string
		selector string
		index    int
	}{
		{name: "no match at all", selector: "span.absent", index: 0},
		{name: "index beyond match count", selector: "span.v", index: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := textAt(root, tt.selector, tt.index)
			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if extractionErr.Kind != MissingField {
				t.Errorf("kind = %s, want %s", extractionErr.Kind, MissingField)
			}
			if extractionErr.Selector != tt.selector {
				t.Errorf("selector = %q, want %q", extractionErr.Selector, tt.selector)
			}
		})
	}
}

func TestTemperatureStripsDegreeGlyph(t *testing.T) {
	root := mustParse(t, `<div><span data-testid="TemperatureValue">64°</span></div>`)

	got, err := temperature(root, `span[data-testid="TemperatureValue"]`, 0)
	if err != nil {
		t.Fatalf("temperature: %v", err)
	}
	if got != "64" {
		t.Errorf("temperature = %q, want %q", got, "64")
	}
}

func TestPercentStripsGlyph(t *testing.T) {
	root := mustParse(t, `<div><span data-testid="PercentageValue">74%</span></div>`)

	got, err := percent(root, `span[data-testid="PercentageValue"]`, 0)
	if err != nil {
		t.Fatalf("percent: %v", err)
	}
	if got != "74" {
		t.Errorf("percent = %q, want %q", got, "74")
	}
}

func TestUVIndexKeepsLeadingDigits(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "single digit with label", text: "7 of 11", want: "7"},
		{name: "two digits", text: "11 Extreme", want: "11"},
		{name: "bare number", text: "3", want: "3"},
		{name: "no leading digits", text: "Extreme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, `<div><span class="uv">`+tt.text+`</span></div>`)
			got, err := uvIndex(root, "span.uv", 0)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("uvIndex(%q) expected error, got %q", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("uvIndex(%q): %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("uvIndex(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPrecipitationType(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  models.PrecipitationType
	}{
		{name: "rain showers", title: "Rain Showers", want: models.PrecipRain},
		{name: "exact snowflake", title: "Snowflake", want: models.PrecipSnow},
		{name: "mixed precipitation", title: "Mixed Precipitation", want: models.PrecipMixed},
		{name: "freezing rain classifies as rain", title: "Freezing Rain", want: models.PrecipRain},
		{name: "unmatched text falls back to ice", title: "Drizzle", want: models.PrecipIce},
		{name: "snowflake with suffix is not snow", title: "Snowflake Icon", want: models.PrecipIce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, `<div><svg class="icon"><title>`+tt.title+`</title></svg></div>`)
			if got := precipitationType(root, "svg.icon > title", 0); got != tt.want {
				t.Errorf("precipitationType(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestPrecipitationTypeAbsentTitle(t *testing.T) {
	root := mustParse(t, `<div><span>no icon here</span></div>`)

	if got := precipitationType(root, "svg.icon > title", 0); got != models.PrecipNone {
		t.Errorf("precipitationType = %v, want %v", got, models.PrecipNone)
	}
}

func TestWind(t *testing.T) {
	root := mustParse(t, `<div>
		<span class="Wind--windWrapper--abc" data-testid="Wind">
			<span>WSW↓</span><span>6</span><span>km/h</span>
		</span>
	</div>`)

	got, err := wind(root, `span[class*="Wind--windWrapper--"][data-testid="Wind"]`, 0)
	if err != nil {
		t.Fatalf("wind: %v", err)
	}
	if got.Direction != "WSW" {
		t.Errorf("direction = %q, want %q", got.Direction, "WSW")
	}
	if got.Speed != "6" {
		t.Errorf("speed = %q, want %q", got.Speed, "6")
	}
}

func TestWindMissingBlock(t *testing.T) {
	root := mustParse(t, `<div></div>`)

	_, err := wind(root, `span[data-testid="Wind"]`, 0)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) || extractionErr.Kind != MissingField {
		t.Fatalf("expected MissingField ExtractionError, got %v", err)
	}
}

func TestCelestialTakesFirstTwoTimes(t *testing.T) {
	// Four matches are sunrise, sunset, moonrise, moonset; only the sun's
	// pair is read.
	root := mustParse(t, `<div>
		<div class="DetailsTable--field--a"><span class="DetailsTable--value--b">06:12</span></div>
		<div class="DetailsTable--field--a"><span class="DetailsTable--value--b">19:45</span></div>
		<div class="DetailsTable--field--a"><span class="DetailsTable--value--b">21:00</span></div>
		<div class="DetailsTable--field--a"><span class="DetailsTable--value--b">05:30</span></div>
	</div>`)

	got, err := celestial(root, `div[class*="DetailsTable--field--"] > span[class*="DetailsTable--value--"]`)
	if err != nil {
		t.Fatalf("celestial: %v", err)
	}
	if got.RiseTime != 6*3600+12*60 {
		t.Errorf("rise = %d, want %d", got.RiseTime, 6*3600+12*60)
	}
	if got.SetTime != 19*3600+45*60 {
		t.Errorf("set = %d, want %d", got.SetTime, 19*3600+45*60)
	}
}

func TestCelestialTooFewTimes(t *testing.T) {
	root := mustParse(t, `<div><span class="t">06:12</span></div>`)

	_, err := celestial(root, "span.t")
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) || extractionErr.Kind != MissingField {
		t.Fatalf("expected MissingField ExtractionError, got %v", err)
	}
}

func TestVisibility(t *testing.T) {
	t.Run("numeric value", func(t *testing.T) {
		root := mustParse(t, `<div><span data-testid="VisibilityValue"><span>10</span></span></div>`)
		if got := visibility(root, `span[data-testid="VisibilityValue"] > span`); got != "10" {
			t.Errorf("visibility = %q, want %q", got, "10")
		}
	})

	t.Run("unlimited renders no node", func(t *testing.T) {
		root := mustParse(t, `<div><span data-testid="VisibilityValue">Unlimited</span></div>`)
		if got := visibility(root, `span[data-testid="VisibilityValue"] > span`); got != "0" {
			t.Errorf("visibility = %q, want %q", got, "0")
		}
	})
}

func TestUnitCode(t *testing.T) {
	tests := []struct {
		unit models.UnitType
		want string
	}{
		{unit: models.UnitMetric, want: "m"},
		{unit: models.UnitImperial, want: "e"},
		{unit: models.UnitType(0), want: "e"},
		{unit: models.UnitType(99), want: "e"},
	}

	for _, tt := range tests {
		if got := unitCode(tt.unit); got != tt.want {
			t.Errorf("unitCode(%d) = %q, want %q", tt.unit, got, tt.want)
		}
	}
}
