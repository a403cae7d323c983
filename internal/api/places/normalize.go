package places

import (
	"github.com/tourgent/go-trip-planner/internal/types"
)

// DefaultSource tags results that came through this provider.
const DefaultSource = "Google Places API"

// Field-resolution tables: per canonical field, the candidate provider keys
// in preference order. The provider answers in two shapes (the v1 camelCase
// form and a legacy snake_case form); resolution is deterministic, first
// present key wins.
var (
	placeIDKeys      = []string{"id", "place_id"}
	addressKeys      = []string{"formattedAddress", "address"}
	ratingCountKeys  = []string{"userRatingCount", "user_rating_count"}
	priceLevelKeys   = []string{"priceLevel", "price_level"}
	phoneKeys        = []string{"internationalPhoneNumber", "phone"}
	websiteKeys      = []string{"websiteUri", "website"}
	openingHoursKeys = []string{"currentOpeningHours", "opening_hours"}
	latitudeKeys     = []string{"latitude", "lat"}
	longitudeKeys    = []string{"longitude", "lng"}
)

// Normalize maps one raw provider place payload onto the canonical record.
// Missing optional fields become zero values, never errors. Coordinates are
// populated only when both components resolve to a non-zero number; a
// legitimate 0.0 coordinate is treated as absent, matching long-standing
// behavior that downstream filtering relies on.
func Normalize(raw map[string]any, source string) types.NormalizedPlace {
	if source == "" {
		source = DefaultSource
	}
	place := types.NormalizedPlace{
		PlaceID:      firstString(raw, placeIDKeys),
		Name:         displayName(raw),
		Address:      firstString(raw, addressKeys),
		PriceLevel:   firstValue(raw, priceLevelKeys),
		Types:        stringSlice(raw["types"]),
		Phone:        firstString(raw, phoneKeys),
		Website:      firstString(raw, websiteKeys),
		OpeningHours: firstValue(raw, openingHoursKeys),
		Photos:       anySlice(raw["photos"]),
		Source:       source,
	}
	if r, ok := floatValue(raw["rating"]); ok {
		place.Rating = &r
	}
	if n, ok := floatValue(firstValue(raw, ratingCountKeys)); ok {
		count := int(n)
		place.UserRatingsTotal = &count
	}
	if loc, ok := raw["location"].(map[string]any); ok {
		lat, latOK := floatValue(firstValue(loc, latitudeKeys))
		lng, lngOK := floatValue(firstValue(loc, longitudeKeys))
		if latOK && lngOK && lat != 0 && lng != 0 {
			place.Coordinates = &types.Coordinates{Latitude: lat, Longitude: lng}
		}
	}
	return place
}

// displayName handles the two name shapes: {"displayName": {"text": ...}},
// a plain displayName string, or the legacy "name" key.
func displayName(raw map[string]any) string {
	switch v := raw["displayName"].(type) {
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			return s
		}
	case string:
		if v != "" {
			return v
		}
	}
	if s, ok := raw["name"].(string); ok {
		return s
	}
	return ""
}

func firstValue(raw map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, keys []string) string {
	if s, ok := firstValue(raw, keys).(string); ok {
		return s
	}
	return ""
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anySlice(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	return nil
}
