package types

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the canonical textual date form used everywhere at the model
// boundary: dd.mm.yyyy.
const DateFormat = "02.01.2006"

// dateLayouts are tried in this fixed priority order; the first successful
// parse wins. dd/mm/yyyy deliberately precedes mm/dd/yyyy.
var dateLayouts = []string{
	DateFormat,
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}

// CoerceDate normalizes a date string to dd.mm.yyyy. Strings matching none of
// the known layouts are returned unchanged rather than failing; upstream
// LLM output drifts in format and a hard error here would lose whole plans.
func CoerceDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateFormat)
		}
	}
	return s
}

// ParseCanonicalDate parses a strict dd.mm.yyyy string. Used by the request
// model, which does not get the lenient treatment response payloads do.
func ParseCanonicalDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FlexDate is a lenient date string: any recognised layout is normalized to
// dd.mm.yyyy on unmarshal, unrecognised strings pass through unchanged.
// Non-string JSON is a type error.
type FlexDate string

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("date", "must be a date string")
	}
	*d = FlexDate(CoerceDate(s))
	return nil
}

func (d FlexDate) String() string { return string(d) }

// TimeValue is a time-of-day or unix-seconds value as produced by the planner:
// a non-negative integer (epoch seconds), a digit string (coerced to the
// integer form), an HH:MM or HH:MM:SS string, or any other string passed
// through unchanged as a lenient fallback.
type TimeValue struct {
	epoch *int64
	text  string
}

// NewEpochTime returns a TimeValue holding unix seconds.
func NewEpochTime(seconds int64) TimeValue {
	return TimeValue{epoch: &seconds}
}

// NewTextTime returns a TimeValue holding a textual time label.
func NewTextTime(s string) TimeValue {
	return TimeValue{text: s}
}

// Epoch reports the unix-seconds form, if the value carries one.
func (t TimeValue) Epoch() (int64, bool) {
	if t.epoch == nil {
		return 0, false
	}
	return *t.epoch, true
}

func (t TimeValue) String() string {
	if t.epoch != nil {
		return strconv.FormatInt(*t.epoch, 10)
	}
	return t.text
}

func (t TimeValue) MarshalJSON() ([]byte, error) {
	if t.epoch != nil {
		return json.Marshal(*t.epoch)
	}
	return json.Marshal(t.text)
}

func (t *TimeValue) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			return NewValidationError("time", "unix seconds must be >= 0")
		}
		t.epoch = &n
		t.text = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("time", "must be unix seconds or an HH:MM[:SS] string")
	}
	if s != "" && isDigits(s) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			t.epoch = &v
			t.text = ""
			return nil
		}
	}
	// HH:MM / HH:MM:SS are validated; anything else passes through as-is.
	t.epoch = nil
	t.text = s
	return nil
}

// IsClockTime reports whether the textual form is a valid HH:MM or HH:MM:SS.
func (t TimeValue) IsClockTime() bool {
	if t.epoch != nil || t.text == "" {
		return false
	}
	parts := strings.Split(t.text, ":")
	layout := ""
	switch len(parts) {
	case 2:
		layout = "15:04"
	case 3:
		layout = "15:04:05"
	default:
		return false
	}
	_, err := time.Parse(layout, t.text)
	return err == nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
