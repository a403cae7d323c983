package types

// Statuses used by search/details/persistence result envelopes.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceFromCenter is attached to nearby-search results.
type DistanceFromCenter struct {
	Km     float64 `json:"km"`
	Meters int     `json:"meters"`
}

// NormalizedPlace is the canonical internal representation of a place,
// regardless of which provider shape produced it. A place without coordinates
// is excluded from location-based and nearby searches.
type NormalizedPlace struct {
	PlaceID            string              `json:"place_id"`
	Name               string              `json:"name"`
	Address            string              `json:"address,omitempty"`
	Coordinates        *Coordinates        `json:"coordinates"`
	Rating             *float64            `json:"rating,omitempty"`
	UserRatingsTotal   *int                `json:"user_ratings_total,omitempty"`
	PriceLevel         any                 `json:"price_level,omitempty"`
	Types              []string            `json:"types"`
	Phone              string              `json:"phone,omitempty"`
	Website            string              `json:"website,omitempty"`
	OpeningHours       any                 `json:"opening_hours,omitempty"`
	Photos             []any               `json:"photos"`
	Reviews            []any               `json:"reviews,omitempty"`
	Source             string              `json:"source"`
	DistanceFromCenter *DistanceFromCenter `json:"distance_from_center,omitempty"`
}

// SearchFilters echoes back which filters a search applied.
type SearchFilters struct {
	MinRating   float64  `json:"min_rating"`
	PriceLevels []string `json:"price_levels,omitempty"`
	OpenNow     *bool    `json:"open_now,omitempty"`
}

// HotelSearchResponse is the envelope for both search modes. Provider-level
// failures are carried in Status/Error, never as a Go error.
type HotelSearchResponse struct {
	Status         string            `json:"status"`
	Error          string            `json:"error,omitempty"`
	Results        []NormalizedPlace `json:"results"`
	TotalFound     int               `json:"total_found,omitempty"`
	SearchLocation string            `json:"search_location,omitempty"`
	SearchCenter   *Coordinates      `json:"search_center,omitempty"`
	SearchRadiusKm float64           `json:"search_radius_km,omitempty"`
	FiltersApplied *SearchFilters    `json:"filters_applied,omitempty"`
}

// HotelAnalysisResult is the envelope for the analyze operation; which field
// is populated depends on the mode.
type HotelAnalysisResult struct {
	Status               string            `json:"status"`
	Error                string            `json:"error,omitempty"`
	Hotel                *NormalizedPlace  `json:"hotel,omitempty"`
	Results              []NormalizedPlace `json:"results,omitempty"`
	ComprehensiveResults []NormalizedPlace `json:"comprehensive_results,omitempty"`
}

// DetailsResult is the place-details half of the combined details operation.
type DetailsResult struct {
	Status string           `json:"status"`
	Error  string           `json:"error,omitempty"`
	Result *NormalizedPlace `json:"result"`
}

// PricesResult is the nightly-pricing half. Properties keep the provider's
// shape; this layer only routes them.
type PricesResult struct {
	Status  string           `json:"status"`
	Error   string           `json:"error,omitempty"`
	Results []map[string]any `json:"results"`
}

// HotelDetailsAndPrices combines both sub-operations. Status is success only
// when every requested sub-operation succeeded, partial when some failed.
type HotelDetailsAndPrices struct {
	Status  string         `json:"status"`
	Details *DetailsResult `json:"details"`
	Prices  *PricesResult  `json:"prices"`
}

// SaveResult reports the outcome of persisting an itinerary.
type SaveResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
}
