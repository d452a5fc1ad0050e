package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayouts lists accepted wire formats, most specific first.
// layouts without zone are parsed as UTC and keep the written calendar date.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a nullable, invalid-tolerant point in time.
// Missing and unparsable values decode to an invalid Timestamp instead of an error.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// NewTimestamp makes a valid Timestamp from t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// ParseTimestamp parses s in any of the accepted layouts, returns invalid Timestamp on failure
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Valid: true}
		}
	}
	return Timestamp{}
}

// Before reports whether ts is strictly older than other. Invalid timestamps are older than any valid one.
func (ts Timestamp) Before(other Timestamp) bool {
	switch {
	case !ts.Valid && !other.Valid:
		return false
	case !ts.Valid:
		return true
	case !other.Valid:
		return false
	}
	return ts.Time.Before(other.Time)
}

// Equal reports whether both timestamps denote the same instant, invalid ones are equal to each other
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.Valid != other.Valid {
		return false
	}
	return !ts.Valid || ts.Time.Equal(other.Time)
}

// Date returns calendar date of the timestamp in its own location
func (ts Timestamp) Date() (Date, bool) {
	if !ts.Valid {
		return Date{}, false
	}
	y, m, d := ts.Time.Date()
	return Date{Year: y, Month: m, Day: d}, true
}

// UnmarshalJSON accepts strings in timestampLayouts, unix milliseconds and null
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil //nolint:nilerr // malformed value is tolerated as missing
		}
		*ts = ParseTimestamp(s)
		return nil
	}

	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		*ts = NewTimestamp(time.UnixMilli(ms).UTC())
	}
	return nil
}

// MarshalJSON writes RFC3339 or null
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339))
}

// String returns RFC3339 representation or empty string
func (ts Timestamp) String() string {
	if !ts.Valid {
		return ""
	}
	return ts.Time.Format(time.RFC3339)
}

// Date is a calendar date without time of day or zone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses YYYY-MM-DD, empty string gives zero Date
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}, nil
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns YYYY-MM-DD or empty string for zero date
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
