package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"twcweather/internal/models"
)

var uvIndexPattern = regexp.MustCompile(`^\d{1,2}`)

// textAt returns the trimmed text of the index-th node matching selector
// under root. Matching fewer than index+1 nodes is a MissingField failure.
func textAt(root *goquery.Selection, selector string, index int) (string, error) {
	matches := root.Find(selector)
	if matches.Length() <= index {
		return "", missingField(selector)
	}
	return strings.TrimSpace(matches.Eq(index).Text()), nil
}

// textFirst returns the trimmed text of the first node matching selector, or
// ok=false when nothing matches. Used for fields the page legitimately omits.
func textFirst(root *goquery.Selection, selector string) (string, bool) {
	matches := root.Find(selector)
	if matches.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(matches.First().Text()), true
}

// temperature strips the degree glyph and passes the number through
// unconverted; the unit is implied by the request's UnitType.
func temperature(root *goquery.Selection, selector string, index int) (string, error) {
	text, err := textAt(root, selector, index)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "°", ""), nil
}

func percent(root *goquery.Selection, selector string, index int) (string, error) {
	text, err := textAt(root, selector, index)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "%", ""), nil
}

// uvIndex keeps only the leading 1-2 digit run; the site appends a label
// after the number ("7 of 11").
func uvIndex(root *goquery.Selection, selector string, index int) (string, error) {
	text, err := textAt(root, selector, index)
	if err != nil {
		return "", err
	}
	digits := uvIndexPattern.FindString(text)
	if digits == "" {
		return "", missingField(selector)
	}
	return digits, nil
}

// precipitationType classifies the accumulation icon's title text. The checks
// are ordered: "Rain" and "Mixed" substring matches run before the exact
// "Snowflake" match, and any other non-empty title falls through to ice.
// A missing or empty title means no precipitation at all.
func precipitationType(root *goquery.Selection, selector string, index int) models.PrecipitationType {
	matches := root.Find(selector)
	if matches.Length() <= index {
		return models.PrecipNone
	}
	text := strings.TrimSpace(matches.Eq(index).Text())
	switch {
	case text == "":
		return models.PrecipNone
	case strings.Contains(text, "Rain"):
		return models.PrecipRain
	case strings.Contains(text, "Mixed"):
		return models.PrecipMixed
	case text == "Snowflake":
		return models.PrecipSnow
	default:
		return models.PrecipIce
	}
}

// wind pulls the index-th wind wrapper and reads its inner spans. The page
// renders exactly direction then speed (then a unit span), so the first two
// fragments are taken in that order. The direction text carries a trailing
// one-character glyph that gets dropped.
func wind(root *goquery.Selection, windSelector string, index int) (models.Wind, error) {
	wrappers := root.Find(windSelector)
	if wrappers.Length() <= index {
		return models.Wind{}, missingField(windSelector)
	}
	parts := wrappers.Eq(index).Find("span")
	if parts.Length() < 2 {
		return models.Wind{}, missingField(windSelector)
	}
	direction := strings.TrimSpace(parts.Eq(0).Text())
	if r := []rune(direction); len(r) > 0 {
		direction = string(r[:len(r)-1])
	}
	return models.Wind{
		Direction: strings.TrimSpace(direction),
		Speed:     strings.TrimSpace(parts.Eq(1).Text()),
	}, nil
}

// celestial reads the rise/set pair from a details block. The selector matches
// up to four time values (sunrise, sunset, moonrise, moonset); the first two
// are always the sun's pair.
func celestial(root *goquery.Selection, selector string) (models.Celestial, error) {
	matches := root.Find(selector)
	if matches.Length() < 2 {
		return models.Celestial{}, missingField(selector)
	}
	rise, err := clockToSeconds(strings.TrimSpace(matches.Eq(0).Text()))
	if err != nil {
		return models.Celestial{}, missingField(selector)
	}
	set, err := clockToSeconds(strings.TrimSpace(matches.Eq(1).Text()))
	if err != nil {
		return models.Celestial{}, missingField(selector)
	}
	return models.Celestial{RiseTime: rise, SetTime: set}, nil
}

// visibility is "0" when the node is absent: the page renders the word
// "Unlimited" with no numeric child in that case.
func visibility(root *goquery.Selection, selector string) string {
	text, ok := textFirst(root, selector)
	if !ok {
		return "0"
	}
	return text
}
