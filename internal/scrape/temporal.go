package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	secondsPerDay = 24 * 60 * 60
	millisPerDay  = secondsPerDay * 1000

	// The page serves a night-only leading block between these local times,
	// bounds inclusive.
	nightWindowStart = 15 * 3600
	nightWindowEnd   = 3 * 3600
)

var (
	// Pulls "03:48" out of "As of 03:48 GMT-03:00". The timezone suffix is
	// discarded: the time is treated as a bare local clock reading.
	lastUpdatedPattern = regexp.MustCompile(`\s(\d{1,2}:\d{2})`)

	// Pulls "01" out of "Thu 01".
	dayOfMonthPattern = regexp.MustCompile(`\d{2}`)
)

// clockTime is a bare local time of day, no date and no zone.
type clockTime struct {
	Hour   int
	Minute int
}

func (c clockTime) Seconds() int {
	return c.Hour*3600 + c.Minute*60
}

// clockToSeconds converts "HH:MM" text into seconds since local midnight.
func clockToSeconds(text string) (int, error) {
	t, err := parseClock(text)
	if err != nil {
		return 0, err
	}
	return t.Seconds(), nil
}

func parseClock(text string) (clockTime, error) {
	parsed, err := time.Parse("15:04", text)
	if err != nil {
		return clockTime{}, fmt.Errorf("parse clock time %q: %w", text, err)
	}
	return clockTime{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// parseLastUpdated extracts the local time of day from the page's
// "As of HH:MM GMT-03:00" timestamp text.
func parseLastUpdated(text string) (clockTime, error) {
	match := lastUpdatedPattern.FindStringSubmatch(text)
	if match == nil {
		return clockTime{}, fmt.Errorf("no HH:MM in last-updated text %q", text)
	}
	return parseClock(match[1])
}

// parseDayOfMonth extracts the day number from "Weekday DD" text.
func parseDayOfMonth(text string) (int, error) {
	digits := dayOfMonthPattern.FindString(text)
	if digits == "" {
		return 0, fmt.Errorf("no day-of-month in %q", text)
	}
	return strconv.Atoi(digits)
}

// isNightWindow reports whether a local time (seconds since midnight) falls
// in the window where the page renders only a night block for the first day.
func isNightWindow(seconds int) bool {
	return seconds >= nightWindowStart || seconds <= nightWindowEnd
}

// firstDailyEpoch builds the epoch (Unix milliseconds) for the first daily
// entry from the page's day-of-month and last-updated time of day. The page
// never states a month or year, so the device's current ones are borrowed;
// a forecast window spanning a month boundary therefore mis-dates its tail.
// The time of day is the last-updated clock reading, not midnight, which is
// exactly what the page itself computes.
func firstDailyEpoch(now time.Time, dayOfMonth int, lastUpdated clockTime) int64 {
	return time.Date(now.Year(), now.Month(), dayOfMonth,
		lastUpdated.Hour, lastUpdated.Minute, 0, 0, now.Location()).UnixMilli()
}
