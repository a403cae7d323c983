package planner

import (
	"fmt"
	"strings"

	"github.com/tourgent/go-trip-planner/internal/types"
)

func getItineraryPrompt(req types.ItineraryRequest, hotelCandidates []types.NormalizedPlace) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`
            Plan a multi-day travel itinerary for %s, %s.
            Trip dates: %s to %s (%d days) for %d traveler(s).`,
		req.City, req.Country,
		req.Date.StartDate, req.Date.EndDate, req.Date.NumberOfDays,
		req.People.NumberOfPeople))

	if len(req.Preferences.Places) > 0 {
		sb.WriteString(fmt.Sprintf("\n            The travelers want to visit: %s.", strings.Join(req.Preferences.Places, ", ")))
	}
	if len(req.Preferences.Cuisines) > 0 {
		sb.WriteString(fmt.Sprintf("\n            Preferred cuisines: %s.", strings.Join(req.Preferences.Cuisines, ", ")))
	}
	if len(req.Preferences.Events) > 0 {
		sb.WriteString(fmt.Sprintf("\n            Preferred events: %s.", strings.Join(req.Preferences.Events, ", ")))
	}
	if req.Preferences.BudgetAmount != nil {
		if budget, ok := req.Preferences.BudgetAmount.Float(); ok {
			sb.WriteString(fmt.Sprintf("\n            Total budget: %.2f %s.", budget, req.Preferences.Currency))
		}
	}
	if req.Preferences.GeneralNotes != "" {
		sb.WriteString(fmt.Sprintf("\n            Additional notes: %s.", req.Preferences.GeneralNotes))
	}
	if len(req.Dislikes.Places) > 0 {
		sb.WriteString(fmt.Sprintf("\n            Avoid these places: %s.", strings.Join(req.Dislikes.Places, ", ")))
	}
	if len(req.Dislikes.Cuisines) > 0 {
		sb.WriteString(fmt.Sprintf("\n            Avoid these cuisines: %s.", strings.Join(req.Dislikes.Cuisines, ", ")))
	}
	if len(hotelCandidates) > 0 {
		names := make([]string, 0, len(hotelCandidates))
		for _, h := range hotelCandidates {
			names = append(names, h.Name)
		}
		sb.WriteString(fmt.Sprintf("\n            Pick the hotel from these verified candidates: %s.", strings.Join(names, "; ")))
	}

	sb.WriteString(`
            All dates must use the dd.mm.yyyy format.
            Return the response STRICTLY as a JSON object with:
            {
            "hotel_information": {
                "name": "Hotel name",
                "place_id": "Stable identifier for the hotel",
                "lat": <float>,
                "lon": <float>,
                "address": "Street address",
                "check_in": "dd.mm.yyyy",
                "check_out": "dd.mm.yyyy",
                "nights": <int>,
                "price_per_night": <float>,
                "total_price": <float>,
                "currency": "ISO currency code"
            },
            "day_plans": [
                {
                "order": <int, starting at 1 with no gaps>,
                "date": "dd.mm.yyyy",
                "summary": "A 1-2 sentence summary of the day.",
                "places": [
                    {
                    "order": <int, starting at 1 with no gaps>,
                    "place_id": "Stable identifier for the place",
                    "name": "Place name",
                    "lat": <float>,
                    "lon": <float>,
                    "address": "Street address",
                    "place_type": "Category (e.g., Museum, Restaurant, Park)",
                    "travel": {"mode": "walk|taxi|public", "to_go": <minutes>},
                    "time": "HH:MM"
                    }
                ]
                }
            ]
            }`)

	return sb.String()
}
