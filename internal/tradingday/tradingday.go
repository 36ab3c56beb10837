// Package tradingday pins every call to an India Standard Time calendar day.
//
// A Day is always the instant of 00:00:00 IST on some calendar date. Days are
// only built through Parse, FromTime or a Calendar, so no code path can compare
// server-local dates against stored trading days.
package tradingday

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"calldesk/internal/apperr"
)

const (
	Zone       = "Asia/Kolkata"
	dateLayout = "2006-01-02"
)

var ist = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		// IST has no DST, a fixed +05:30 zone is equivalent when tzdata is missing.
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Location returns the trading calendar location.
func Location() *time.Location { return ist }

// accepted shapes for inputs that carry a time part; only the date prefix is used.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

type Day struct {
	t time.Time
}

// Parse reads the calendar date at the start of s and returns IST midnight of
// that date. Any time of day or zone suffix is validated and then ignored.
func Parse(s string) (Day, error) {
	raw := strings.TrimSpace(s)
	if len(raw) < len(dateLayout) {
		return Day{}, apperr.InvalidDate(s, nil)
	}
	d, err := time.ParseInLocation(dateLayout, raw[:len(dateLayout)], ist)
	if err != nil {
		return Day{}, apperr.InvalidDate(s, err)
	}
	if len(raw) > len(dateLayout) && !hasValidTimePart(raw) {
		return Day{}, apperr.InvalidDate(s, nil)
	}
	return Day{t: d}, nil
}

func hasValidTimePart(raw string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}

// FromTime returns the trading day containing instant t on the IST calendar.
func FromTime(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	y, m, d := t.In(ist).Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, ist)}
}

func (d Day) IsZero() bool { return d.t.IsZero() }

// Time is the absolute instant of the day's IST midnight, in UTC.
func (d Day) Time() time.Time {
	if d.t.IsZero() {
		return time.Time{}
	}
	return d.t.UTC()
}

// Start is the first instant of the day.
func (d Day) Start() time.Time { return d.Time() }

// End is the first instant of the following day; ranges are [Start, End).
func (d Day) End() time.Time { return d.AddDays(1).Time() }

func (d Day) AddDays(n int) Day {
	if d.t.IsZero() {
		return d
	}
	y, m, dd := d.t.Date()
	return Day{t: time.Date(y, m, dd+n, 0, 0, 0, 0, ist)}
}

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

func (d Day) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalJSON writes the instant with its +05:30 offset so the date prefix
// parses back to the same day.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(time.RFC3339))
}

func (d *Day) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Day{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return apperr.InvalidDate(string(b), err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Day) Value() (driver.Value, error) {
	if d.t.IsZero() {
		return nil, nil
	}
	return d.t.UTC(), nil
}

func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Day{}
	case time.Time:
		*d = FromTime(v)
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("tradingday: cannot scan %T", src)
	}
	return nil
}

// DayRange returns [start, end) covering the trading day named by s.
func DayRange(s string) (time.Time, time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return d.Start(), d.End(), nil
}

// Calendar answers "what is today" against an injectable clock.
type Calendar struct {
	Now func() time.Time
}

func (c *Calendar) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Calendar) Today() Day {
	return FromTime(c.now())
}

func (c *Calendar) DaysAgo(n int) Day {
	return c.Today().AddDays(-n)
}
