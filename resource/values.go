package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried most specific first.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Date is a calendar date as sent by the API. Release dates may carry only
// a year or a year and month; missing parts default to the first of the
// period. The zero Date means unset.
type Date struct {
	t time.Time
}

// NewDate returns the given calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD, YYYY-MM or YYYY.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if len(s) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// MarshalJSON writes YYYY-MM-DD, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts any of the date layouts. Values that are not a
// parseable date string leave the date unset rather than failing.
func (d *Date) UnmarshalJSON(b []byte) error {
	*d = Date{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
	}
	return nil
}

// Timestamp is an instant as sent by the API, normally RFC 3339. A bare
// calendar date is accepted too. Unparseable values leave it unset.
type Timestamp struct {
	t time.Time
}

// NewTimestamp returns a Timestamp at t.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{t: t} }

// Time returns the instant.
func (ts Timestamp) Time() time.Time { return ts.t }

// IsZero reports whether the timestamp is unset.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

// MarshalJSON writes RFC 3339, or null when unset.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.t.Format(time.RFC3339))
}

// UnmarshalJSON accepts RFC 3339 or any of the date layouts and leaves the
// timestamp unset for anything else.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	*ts = Timestamp{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		ts.t = t
		return nil
	}
	if d, err := ParseDate(s); err == nil {
		ts.t = d.Time()
	}
	return nil
}

// Millis is a duration carried on the wire as integer milliseconds.
type Millis time.Duration

// Duration returns m as a time.Duration.
func (m Millis) Duration() time.Duration { return time.Duration(m) }

// MarshalJSON writes whole milliseconds.
func (m Millis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Duration(m).Milliseconds(), 10)), nil
}

// UnmarshalJSON reads a JSON number of milliseconds. Anything else is an
// error.
func (m *Millis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	if ms, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*m = Millis(time.Duration(ms) * time.Millisecond)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("duration: expected milliseconds, got %s", b)
	}
	*m = Millis(time.Duration(f * float64(time.Millisecond)))
	return nil
}

// Artwork describes an image with a templated URL.
type Artwork struct {
	BgColor    string `json:"bgColor,omitempty"`
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	TextColor1 string `json:"textColor1,omitempty"`
	TextColor2 string `json:"textColor2,omitempty"`
	TextColor3 string `json:"textColor3,omitempty"`
	TextColor4 string `json:"textColor4,omitempty"`
	URL        string `json:"url"`
}

// Sized returns the artwork URL with the {w} and {h} placeholders replaced.
func (a Artwork) Sized(width, height int) string {
	return strings.NewReplacer(
		"{w}", strconv.Itoa(width),
		"{h}", strconv.Itoa(height),
	).Replace(a.URL)
}

// Original returns the artwork URL at its maximum size.
func (a Artwork) Original() string { return a.Sized(a.Width, a.Height) }

// EditorialNotes holds editorial copy about a resource.
type EditorialNotes struct {
	Short    string `json:"short,omitempty"`
	Standard string `json:"standard,omitempty"`
	Name     string `json:"name,omitempty"`
	Tagline  string `json:"tagline,omitempty"`
}

// Description holds a playlist or video description.
type Description struct {
	Short    string `json:"short,omitempty"`
	Standard string `json:"standard"`
}

// PlayParameters identifies a playable item.
type PlayParameters struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	CatalogID   string `json:"catalogId,omitempty"`
	IsLibrary   bool   `json:"isLibrary,omitempty"`
	VersionHash string `json:"versionHash,omitempty"`
}

// Preview is an audio or video preview asset.
type Preview struct {
	Artwork *Artwork `json:"artwork,omitempty"`
	URL     string   `json:"url"`
	HlsURL  string   `json:"hlsUrl,omitempty"`
}

// DisplayText is localized text prepared for presentation.
type DisplayText struct {
	StringForDisplay string `json:"stringForDisplay"`
}
