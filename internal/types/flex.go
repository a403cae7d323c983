package types

import (
	"encoding/json"
	"strconv"
)

// FlexAmount is a monetary amount that upstream may send as a JSON number or
// as a string. Numeric-looking strings are coerced to the number form; other
// strings are kept verbatim rather than rejected.
type FlexAmount struct {
	number *float64
	text   string
}

// AmountFromFloat builds a numeric FlexAmount.
func AmountFromFloat(v float64) *FlexAmount {
	return &FlexAmount{number: &v}
}

// AmountFromText builds a textual FlexAmount without coercion.
func AmountFromText(s string) *FlexAmount {
	return &FlexAmount{text: s}
}

// Float reports the numeric form, if the amount carries one.
func (a *FlexAmount) Float() (float64, bool) {
	if a == nil || a.number == nil {
		return 0, false
	}
	return *a.number, true
}

func (a *FlexAmount) String() string {
	if a == nil {
		return ""
	}
	if a.number != nil {
		return strconv.FormatFloat(*a.number, 'f', -1, 64)
	}
	return a.text
}

func (a FlexAmount) MarshalJSON() ([]byte, error) {
	if a.number != nil {
		return json.Marshal(*a.number)
	}
	return json.Marshal(a.text)
}

func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		a.number = &f
		a.text = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("amount", "must be a number or string")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		a.number = &v
		a.text = ""
		return nil
	}
	a.number = nil
	a.text = s
	return nil
}

// FlexCount is an integer that may arrive as a free-text label instead
// (e.g. nights: 4 vs nights: "4 nights").
type FlexCount struct {
	count *int64
	label string
}

// CountFromInt builds a numeric FlexCount.
func CountFromInt(v int64) *FlexCount {
	return &FlexCount{count: &v}
}

// Int reports the integer form, if present.
func (c *FlexCount) Int() (int64, bool) {
	if c == nil || c.count == nil {
		return 0, false
	}
	return *c.count, true
}

func (c *FlexCount) String() string {
	if c == nil {
		return ""
	}
	if c.count != nil {
		return strconv.FormatInt(*c.count, 10)
	}
	return c.label
}

func (c FlexCount) MarshalJSON() ([]byte, error) {
	if c.count != nil {
		return json.Marshal(*c.count)
	}
	return json.Marshal(c.label)
}

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		c.count = &n
		c.label = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("count", "must be an integer or string")
	}
	c.count = nil
	c.label = s
	return nil
}

// FlexID is a place identifier that providers emit either as a string or as
// an integer.
type FlexID struct {
	number *int64
	text   string
}

// IDFromString builds a string FlexID.
func IDFromString(s string) FlexID {
	return FlexID{text: s}
}

func (id FlexID) String() string {
	if id.number != nil {
		return strconv.FormatInt(*id.number, 10)
	}
	return id.text
}

// IsZero reports whether the identifier is unset.
func (id FlexID) IsZero() bool {
	return id.number == nil && id.text == ""
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	if id.number != nil {
		return json.Marshal(*id.number)
	}
	return json.Marshal(id.text)
}

func (id *FlexID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		id.number = &n
		id.text = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("place_id", "must be a string or integer")
	}
	id.number = nil
	id.text = s
	return nil
}
