package models

import (
	"time"
)

const isoLayout = "2006-01-02"

// Date is a calendar date with no time of day. The zero value means the date
// is unknown; there is no partially-known state.
type Date struct {
	t time.Time
}

// NewDate builds a Date. Out-of-range parts normalize the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseISODate parses YYYY-MM-DD. ok is false for anything else.
func ParseISODate(s string) (Date, bool) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, false
	}
	return Date{t: t}, true
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) Year() int          { return d.t.Year() }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

// DaysBetween returns |a - b| in whole days.
func DaysBetween(a, b Date) int {
	days := int(a.t.Sub(b.t).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(isoLayout, string(b))
	if err != nil {
		return err
	}
	*d = Date{t: t}
	return nil
}
