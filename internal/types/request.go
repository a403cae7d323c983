package types

import (
	"encoding/json"
	"strings"
	"time"
)

// DateRange is the trip window of an itinerary request. EndDate is derived
// from StartDate + NumberOfDays when omitted. All dates are canonical
// dd.mm.yyyy strings; the request side parses them strictly.
type DateRange struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	NumberOfDays int    `json:"number_of_days" validate:"min=1"`
}

// NewDateRange returns the default range: starting today, three days.
func NewDateRange() DateRange {
	d := DateRange{NumberOfDays: 3}
	_ = d.Validate()
	return d
}

func (d *DateRange) UnmarshalJSON(data []byte) error {
	raw, err := strictFields(data, "date", "start_date", "end_date", "number_of_days")
	if err != nil {
		return err
	}
	d.NumberOfDays = 3
	if v, ok := raw["number_of_days"]; ok {
		if err := json.Unmarshal(v, &d.NumberOfDays); err != nil {
			return NewValidationError("date.number_of_days", "must be an integer")
		}
	}
	if v, ok := raw["start_date"]; ok {
		if err := json.Unmarshal(v, &d.StartDate); err != nil {
			return NewValidationError("date.start_date", "must be a dd.mm.yyyy string")
		}
	}
	if v, ok := raw["end_date"]; ok {
		if err := json.Unmarshal(v, &d.EndDate); err != nil {
			return NewValidationError("date.end_date", "must be a dd.mm.yyyy string")
		}
	}
	return d.Validate()
}

// Validate normalizes defaults and enforces the range invariant. It is safe
// to call again after mutating fields.
func (d *DateRange) Validate() error {
	if err := checkStruct(d); err != nil {
		return err
	}
	if d.StartDate == "" {
		d.StartDate = time.Now().Format(DateFormat)
	}
	start, err := ParseCanonicalDate(d.StartDate)
	if err != nil {
		return NewValidationError("date.start_date", "must be a valid dd.mm.yyyy date")
	}
	if d.EndDate == "" {
		d.EndDate = start.AddDate(0, 0, d.NumberOfDays).Format(DateFormat)
	}
	end, err := ParseCanonicalDate(d.EndDate)
	if err != nil {
		return NewValidationError("date.end_date", "must be a valid dd.mm.yyyy date")
	}
	if end.Before(start) {
		return NewValidationError("date.end_date", "cannot be before start_date")
	}
	return nil
}

// TravelerInfo describes who is travelling.
type TravelerInfo struct {
	NumberOfPeople int    `json:"number_of_people" validate:"min=1"`
	PeopleDetails  string `json:"people_details,omitempty"`
}

// NewTravelerInfo returns the default party of one.
func NewTravelerInfo() TravelerInfo {
	return TravelerInfo{NumberOfPeople: 1}
}

func (t *TravelerInfo) UnmarshalJSON(data []byte) error {
	raw, err := strictFields(data, "people", "number_of_people", "people_details")
	if err != nil {
		return err
	}
	t.NumberOfPeople = 1
	if v, ok := raw["number_of_people"]; ok {
		if err := json.Unmarshal(v, &t.NumberOfPeople); err != nil {
			return NewValidationError("people.number_of_people", "must be an integer")
		}
	}
	if v, ok := raw["people_details"]; ok {
		if err := json.Unmarshal(v, &t.PeopleDetails); err != nil {
			return NewValidationError("people.people_details", "must be a string")
		}
	}
	return t.Validate()
}

func (t *TravelerInfo) Validate() error {
	return checkStruct(t)
}

// Preferences carries what the travellers want. The cuisine list is accepted
// under both "cousines" (the historical wire name) and "cuisines", and is
// always emitted as "cousines" for compatibility with existing consumers.
type Preferences struct {
	Events       []string    `json:"events,omitempty"`
	Cuisines     []string    `json:"cousines,omitempty"`
	Places       []string    `json:"places,omitempty"`
	BudgetAmount *FlexAmount `json:"budget_amount,omitempty"`
	Currency     string      `json:"currency"`
	GeneralNotes string      `json:"general_notes,omitempty"`
}

// NewPreferences returns empty preferences with the USD default currency.
func NewPreferences() Preferences {
	return Preferences{Currency: "USD"}
}

func (p *Preferences) UnmarshalJSON(data []byte) error {
	raw, err := strictFields(data, "preferences",
		"events", "cousines", "cuisines", "places", "budget_amount", "currency", "general_notes")
	if err != nil {
		return err
	}
	*p = NewPreferences()
	if err := unmarshalStringList(raw, "preferences", "events", &p.Events); err != nil {
		return err
	}
	if err := unmarshalCuisines(raw, "preferences", &p.Cuisines); err != nil {
		return err
	}
	if err := unmarshalStringList(raw, "preferences", "places", &p.Places); err != nil {
		return err
	}
	if v, ok := raw["budget_amount"]; ok {
		p.BudgetAmount = &FlexAmount{}
		if err := json.Unmarshal(v, p.BudgetAmount); err != nil {
			return NewValidationError("preferences.budget_amount", "must be a number or string")
		}
	}
	if v, ok := raw["currency"]; ok {
		if err := json.Unmarshal(v, &p.Currency); err != nil {
			return NewValidationError("preferences.currency", "must be a string")
		}
	}
	if v, ok := raw["general_notes"]; ok {
		if err := json.Unmarshal(v, &p.GeneralNotes); err != nil {
			return NewValidationError("preferences.general_notes", "must be a string")
		}
	}
	return p.Validate()
}

func (p *Preferences) Validate() error {
	if p.Currency == "" {
		p.Currency = "USD"
	}
	p.Currency = strings.ToUpper(p.Currency)
	return checkStruct(p)
}

// Dislikes mirrors Preferences for things to avoid, with the same cuisine
// field aliasing.
type Dislikes struct {
	Events      []string `json:"events,omitempty"`
	Cuisines    []string `json:"cousines,omitempty"`
	Places      []string `json:"places,omitempty"`
	GeneralNote string   `json:"general_note,omitempty"`
}

func (d *Dislikes) UnmarshalJSON(data []byte) error {
	raw, err := strictFields(data, "dislikes",
		"events", "cousines", "cuisines", "places", "general_note")
	if err != nil {
		return err
	}
	*d = Dislikes{}
	if err := unmarshalStringList(raw, "dislikes", "events", &d.Events); err != nil {
		return err
	}
	if err := unmarshalCuisines(raw, "dislikes", &d.Cuisines); err != nil {
		return err
	}
	if err := unmarshalStringList(raw, "dislikes", "places", &d.Places); err != nil {
		return err
	}
	if v, ok := raw["general_note"]; ok {
		if err := json.Unmarshal(v, &d.GeneralNote); err != nil {
			return NewValidationError("dislikes.general_note", "must be a string")
		}
	}
	return nil
}

func (d *Dislikes) Validate() error {
	return checkStruct(d)
}

// ItineraryRequest is the validated input envelope for a planning run.
// Unknown fields anywhere in the request are rejected outright.
type ItineraryRequest struct {
	City        string       `json:"city" validate:"required"`
	Country     string       `json:"country" validate:"required"`
	Date        DateRange    `json:"date"`
	People      TravelerInfo `json:"people"`
	Preferences Preferences  `json:"preferences"`
	Dislikes    Dislikes     `json:"dislikes"`
}

func (r *ItineraryRequest) UnmarshalJSON(data []byte) error {
	raw, err := strictFields(data, "request",
		"city", "country", "date", "people", "preferences", "dislikes")
	if err != nil {
		return err
	}
	r.Date = NewDateRange()
	r.People = NewTravelerInfo()
	r.Preferences = NewPreferences()
	r.Dislikes = Dislikes{}
	if v, ok := raw["city"]; ok {
		if err := json.Unmarshal(v, &r.City); err != nil {
			return NewValidationError("city", "must be a string")
		}
	}
	if v, ok := raw["country"]; ok {
		if err := json.Unmarshal(v, &r.Country); err != nil {
			return NewValidationError("country", "must be a string")
		}
	}
	if v, ok := raw["date"]; ok {
		if err := json.Unmarshal(v, &r.Date); err != nil {
			return err
		}
	}
	if v, ok := raw["people"]; ok {
		if err := json.Unmarshal(v, &r.People); err != nil {
			return err
		}
	}
	if v, ok := raw["preferences"]; ok {
		if err := json.Unmarshal(v, &r.Preferences); err != nil {
			return err
		}
	}
	if v, ok := raw["dislikes"]; ok {
		if err := json.Unmarshal(v, &r.Dislikes); err != nil {
			return err
		}
	}
	return r.Validate()
}

func (r *ItineraryRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.People.Validate(); err != nil {
		return err
	}
	if err := r.Preferences.Validate(); err != nil {
		return err
	}
	return r.Dislikes.Validate()
}

// unmarshalCuisines resolves the cousines/cuisines alias pair; the historical
// spelling wins when both appear.
func unmarshalCuisines(raw map[string]json.RawMessage, model string, dst *[]string) error {
	v, ok := raw["cousines"]
	if !ok {
		v, ok = raw["cuisines"]
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return NewValidationError(model+".cousines", "must be a list of strings")
	}
	return nil
}

func unmarshalStringList(raw map[string]json.RawMessage, model, key string, dst *[]string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return NewValidationError(model+"."+key, "must be a list of strings")
	}
	return nil
}
