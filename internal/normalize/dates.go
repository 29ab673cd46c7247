package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"kinlead/internal/genealogy/models"
)

// dateLayouts are tried in order before falling back to dateparse. Layouts
// without a day resolve to the 1st and layouts without a month resolve to
// January. Numeric slash dates are read month first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02.01.2006",
	"2.1.2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 January, 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"January, 2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
	"2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var (
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	septAbbrev    = regexp.MustCompile(`(?i)\bsept\b\.?`)
	abbrevPeriod  = regexp.MustCompile(`\b([A-Za-z]{3})\.`)
	leadWeekday   = regexp.MustCompile(`(?i)^(mon|tues?|wed(nes)?|thu(rs)?|fri|sat(ur)?|sun)(day)?\.?,\s*`)
	ofWord        = regexp.MustCompile(`(?i)\s+of\s+`)
	fullYear      = regexp.MustCompile(`\d{4}`)
	allDigits     = regexp.MustCompile(`^\d+$`)
)

// ParseDate reads a human-entered date. Anything it cannot read is absent,
// and so is any date written without a four-digit year.
func ParseDate(raw string) models.Date {
	s := cleanDate(raw)
	if s == "" || !fullYear.MatchString(s) {
		return models.Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateOf(t)
		}
	}
	// dateparse reads leading words loosely ("about 1880") and bare numbers as
	// timestamps, so it only sees dates that start with a number and, when
	// purely numeric, are written yyyymmdd.
	if s[0] < '0' || s[0] > '9' || (allDigits.MatchString(s) && len(s) != 8) {
		return models.Date{}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return models.Date{}
	}
	return models.DateOf(t)
}

func cleanDate(raw string) string {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return ""
	}
	s = leadWeekday.ReplaceAllString(s, "")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = ofWord.ReplaceAllString(s, " ")
	s = septAbbrev.ReplaceAllString(s, "Sep")
	s = abbrevPeriod.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// DateValue converts a decoded payload value into a Date. Strings go through
// ParseDate; time values are taken as calendar dates directly.
func DateValue(v any) models.Date {
	switch val := v.(type) {
	case nil:
		return models.Date{}
	case string:
		return ParseDate(val)
	case time.Time:
		return models.DateOf(val)
	case *time.Time:
		if val == nil {
			return models.Date{}
		}
		return models.DateOf(*val)
	case models.Date:
		return val
	}
	return models.Date{}
}

// YearStartDate synthesises January 1st of a bare birth year. Years outside
// 1..9999 and unparseable values are absent.
func YearStartDate(v any) models.Date {
	year, ok := intValue(v)
	if !ok || year < 1 || year > 9999 {
		return models.Date{}
	}
	return models.NewDate(year, time.January, 1)
}

func intValue(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	case interface{ Int64() (int64, error) }:
		n, err := val.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		return n, err == nil
	}
	return 0, false
}
