package types

import (
	"encoding/json"
	"errors"
)

// Travel describes how to get to a stop from the previous one.
type Travel struct {
	Mode string     `json:"mode,omitempty"`
	ToGo *FlexCount `json:"to_go,omitempty"`
}

// Place is one leg of a day plan. Latitude and longitude are strictly
// numeric and must be present: the planner LLM occasionally emits them as
// strings or drops them, and either must fail loudly instead of silently
// mislocating a stop. Unknown fields are ignored so the contract stays
// forward compatible with upstream JSON.
type Place struct {
	Order     int       `json:"order" validate:"min=1"`
	PlaceID   FlexID    `json:"place_id"`
	Lat       float64   `json:"lat" validate:"gte=-90,lte=90"`
	Lon       float64   `json:"lon" validate:"gte=-180,lte=180"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	PlaceType string    `json:"place_type,omitempty"`
	Travel    Travel    `json:"travel"`
	Time      TimeValue `json:"time"`
}

func (p *Place) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "place", "place_id", "lat", "lon", "name", "time"); err != nil {
		return err
	}
	type alias Place
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return remapCoordinateTypeError(err, "place")
	}
	*p = Place(a)
	return p.Validate()
}

func (p *Place) Validate() error {
	return checkStruct(p)
}

// DayPlan is one day of the itinerary: an ordered list of places plus a
// summary. The places' order values must cover exactly 1..n.
type DayPlan struct {
	Order   int      `json:"order" validate:"min=1"`
	Date    FlexDate `json:"date"`
	Places  []Place  `json:"places"`
	Summary string   `json:"summary" validate:"required"`
}

func (d *DayPlan) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "day_plan", "date", "places", "summary"); err != nil {
		return err
	}
	type alias DayPlan
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = DayPlan(a)
	return d.Validate()
}

func (d *DayPlan) Validate() error {
	if err := checkStruct(d); err != nil {
		return err
	}
	orders := make([]int, len(d.Places))
	for i := range d.Places {
		if err := d.Places[i].Validate(); err != nil {
			return err
		}
		orders[i] = d.Places[i].Order
	}
	return checkSequentialOrder(orders, "places.order")
}

// HotelInformation is the stay selected for the whole trip.
type HotelInformation struct {
	Name          string      `json:"name" validate:"required"`
	PlaceID       FlexID      `json:"place_id"`
	Lat           float64     `json:"lat" validate:"gte=-90,lte=90"`
	Lon           float64     `json:"lon" validate:"gte=-180,lte=180"`
	Address       string      `json:"address,omitempty"`
	CheckIn       FlexDate    `json:"check_in,omitempty"`
	CheckOut      FlexDate    `json:"check_out,omitempty"`
	Nights        *FlexCount  `json:"nights,omitempty"`
	PricePerNight *FlexAmount `json:"price_per_night,omitempty"`
	TotalPrice    *FlexAmount `json:"total_price,omitempty"`
	Currency      string      `json:"currency,omitempty"`
	BookingLink   string      `json:"booking_link,omitempty"`
}

func (h *HotelInformation) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "hotel_information", "name", "place_id", "lat", "lon"); err != nil {
		return err
	}
	type alias HotelInformation
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return remapCoordinateTypeError(err, "hotel_information")
	}
	*h = HotelInformation(a)
	return h.Validate()
}

func (h *HotelInformation) Validate() error {
	return checkStruct(h)
}

// ItineraryResponse is the validated output envelope of a planning run.
// DayPlan order values must cover exactly 1..n.
type ItineraryResponse struct {
	HotelInformation HotelInformation `json:"hotel_information"`
	DayPlans         []DayPlan        `json:"day_plans"`
}

func (r *ItineraryResponse) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "itinerary", "hotel_information", "day_plans"); err != nil {
		return err
	}
	type alias ItineraryResponse
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = ItineraryResponse(a)
	return r.Validate()
}

func (r *ItineraryResponse) Validate() error {
	if err := r.HotelInformation.Validate(); err != nil {
		return err
	}
	orders := make([]int, len(r.DayPlans))
	for i := range r.DayPlans {
		if err := r.DayPlans[i].Validate(); err != nil {
			return err
		}
		orders[i] = r.DayPlans[i].Order
	}
	return checkSequentialOrder(orders, "day_plans.order")
}

// requireKeys rejects a payload that omits any of the mandatory keys, before
// decoding can paper over the gap with zero values. A lat of 0.0 is a real
// coordinate when the key is present; an absent key is not. JSON null counts
// as absent.
func requireKeys(data []byte, model string, keys ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || string(v) == "null" {
			return NewValidationError(model+"."+k, "is required")
		}
	}
	return nil
}

// remapCoordinateTypeError turns the stdlib's type error for string lat/lon
// into the field-scoped form the rest of validation uses.
func remapCoordinateTypeError(err error, model string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && (typeErr.Field == "lat" || typeErr.Field == "lon") {
		return NewValidationError(model+"."+typeErr.Field, "must be numeric, not "+typeErr.Value)
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return err
}
