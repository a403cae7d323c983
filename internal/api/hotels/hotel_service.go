package hotels

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/tourgent/go-trip-planner/app/observability/metrics"
	"github.com/tourgent/go-trip-planner/internal/api/places"
	"github.com/tourgent/go-trip-planner/internal/api/pricing"
	"github.com/tourgent/go-trip-planner/internal/types"
)

const (
	defaultNearbyRadiusMeters = 2000.0
	routeSearchRadiusMeters   = 5000.0
	defaultMaxResults         = 20
	comprehensiveMaxResults   = 5

	duplicateNameThreshold  = 0.8
	duplicateDistanceMeters = 100.0
)

var _ Service = (*ServiceImpl)(nil)

// SearchParams selects one of the two search modes: by free-text location,
// or nearby a coordinate pair.
type SearchParams struct {
	Location     string   `json:"location,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters float64  `json:"radius_meters,omitempty"`
	MinRating    float64  `json:"min_rating,omitempty"`
	MaxResults   int      `json:"max_results,omitempty"`
	PriceLevels  []string `json:"price_levels,omitempty"`
	OpenNow      *bool    `json:"open_now,omitempty"`
}

// AnalyzeParams drives the combined-analysis operation.
type AnalyzeParams struct {
	Mode        string             `json:"mode"` // "location", "route" or "comprehensive"
	HotelName   string             `json:"hotel_name,omitempty"`
	City        string             `json:"city,omitempty"`
	Origin      *types.Coordinates `json:"origin,omitempty"`
	Destination *types.Coordinates `json:"destination,omitempty"`
	Location    string             `json:"location,omitempty"`
}

// DetailsParams drives the details-and-prices operation. The details half
// runs when PlaceID is set; the pricing half when both stay dates are set.
type DetailsParams struct {
	PlaceID        string `json:"place_id,omitempty"`
	IncludePhotos  *bool  `json:"include_photos,omitempty"`
	IncludeReviews *bool  `json:"include_reviews,omitempty"`

	LocationForPrice string `json:"location,omitempty"`
	HotelName        string `json:"hotel_name,omitempty"`
	CheckIn          string `json:"check_in,omitempty"`
	CheckOut         string `json:"check_out,omitempty"`
	Currency         string `json:"currency,omitempty"`
	Adults           int    `json:"adults,omitempty"`
	MinPrice         int    `json:"min_price,omitempty"`
	MaxPrice         int    `json:"max_price,omitempty"`
	SortBy           int    `json:"sort_by,omitempty"`
}

// Service is the hotel search engine. Provider failures never surface as Go
// errors; every result envelope carries its own status.
type Service interface {
	// Search runs a by-location or nearby search. Results are deduplicated:
	// candidates with a near-identical name within walking distance of an
	// already-kept result are dropped, so the result count can be lower than
	// what the provider returned.
	Search(ctx context.Context, params SearchParams) *types.HotelSearchResponse
	Analyze(ctx context.Context, params AnalyzeParams) *types.HotelAnalysisResult
	DetailsAndPrices(ctx context.Context, params DetailsParams) *types.HotelDetailsAndPrices
}

type ServiceImpl struct {
	logger  *slog.Logger
	places  places.Client
	pricing pricing.Client
}

func NewServiceImpl(placesClient places.Client, pricingClient pricing.Client, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		places:  placesClient,
		pricing: pricingClient,
	}
}

func (s *ServiceImpl) Search(ctx context.Context, params SearchParams) *types.HotelSearchResponse {
	ctx, span := otel.Tracer("HotelService").Start(ctx, "Search")
	defer span.End()
	start := time.Now()
	defer func() {
		if m := metrics.Get(); m != nil {
			m.HotelSearchesTotal.Add(ctx, 1)
			m.SearchDurationSeconds.Record(ctx, time.Since(start).Seconds())
		}
	}()

	maxResults := params.MaxResults
	if maxResults <= 0 || maxResults > defaultMaxResults {
		maxResults = defaultMaxResults
	}

	switch {
	case params.Location != "":
		span.SetAttributes(attribute.String("search.mode", "location"))
		return s.searchByLocation(ctx, params, maxResults)
	case params.Latitude != nil && params.Longitude != nil:
		span.SetAttributes(attribute.String("search.mode", "nearby"))
		return s.searchNearby(ctx, params, maxResults)
	default:
		span.SetStatus(codes.Error, "missing search input")
		return searchError("Either `location` or (`latitude` & `longitude`) must be provided")
	}
}

func (s *ServiceImpl) searchByLocation(ctx context.Context, params SearchParams, maxResults int) *types.HotelSearchResponse {
	payload, err := s.places.TextSearch(ctx, places.TextSearchRequest{
		Query:        fmt.Sprintf("hotels lodging in %s", params.Location),
		FieldMask:    places.SearchFieldMask,
		IncludedType: "lodging",
		MinRating:    params.MinRating,
		PriceLevels:  params.PriceLevels,
		OpenNow:      params.OpenNow,
		PageSize:     maxResults,
	})
	if err != nil {
		s.recordProviderError(ctx, "location search", err)
		return searchError(fmt.Sprintf("Search failed: %s", err))
	}

	results := make([]types.NormalizedPlace, 0)
	for _, raw := range rawPlaces(payload) {
		normalized := places.Normalize(raw, "")
		// Places without coordinates cannot be mapped or routed; drop them.
		if normalized.Coordinates != nil {
			results = append(results, normalized)
		}
	}
	results = dedupeSimilar(results)

	return &types.HotelSearchResponse{
		Status:         types.StatusSuccess,
		Results:        results,
		TotalFound:     len(results),
		SearchLocation: params.Location,
		FiltersApplied: &types.SearchFilters{
			MinRating:   params.MinRating,
			PriceLevels: params.PriceLevels,
			OpenNow:     params.OpenNow,
		},
	}
}

func (s *ServiceImpl) searchNearby(ctx context.Context, params SearchParams, maxResults int) *types.HotelSearchResponse {
	radius := params.RadiusMeters
	if radius <= 0 {
		radius = defaultNearbyRadiusMeters
	}
	centerLat, centerLon := *params.Latitude, *params.Longitude

	payload, err := s.places.NearbySearch(ctx, places.NearbySearchRequest{
		Latitude:       centerLat,
		Longitude:      centerLon,
		RadiusMeters:   radius,
		FieldMask:      places.SearchFieldMask,
		IncludedTypes:  []string{"lodging"},
		MaxResultCount: maxResults,
	})
	if err != nil {
		s.recordProviderError(ctx, "nearby search", err)
		return searchError(fmt.Sprintf("Nearby search failed: %s", err))
	}

	results := make([]types.NormalizedPlace, 0)
	for _, raw := range rawPlaces(payload) {
		normalized := places.Normalize(raw, "")
		if normalized.Coordinates == nil {
			continue
		}
		km := HaversineKm(centerLat, centerLon, normalized.Coordinates.Latitude, normalized.Coordinates.Longitude)
		normalized.DistanceFromCenter = &types.DistanceFromCenter{
			Km:     math.Round(km*1000) / 1000,
			Meters: int(math.Round(km * 1000)),
		}
		// Unrated places pass the rating filter.
		if normalized.Rating == nil || *normalized.Rating >= params.MinRating {
			results = append(results, normalized)
		}
	}
	results = dedupeSimilar(results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceFromCenter.Km < results[j].DistanceFromCenter.Km
	})

	return &types.HotelSearchResponse{
		Status:         types.StatusSuccess,
		Results:        results,
		TotalFound:     len(results),
		SearchCenter:   &types.Coordinates{Latitude: centerLat, Longitude: centerLon},
		SearchRadiusKm: radius / 1000,
		FiltersApplied: &types.SearchFilters{MinRating: params.MinRating},
	}
}

func (s *ServiceImpl) Analyze(ctx context.Context, params AnalyzeParams) *types.HotelAnalysisResult {
	ctx, span := otel.Tracer("HotelService").Start(ctx, "Analyze")
	defer span.End()
	span.SetAttributes(attribute.String("analyze.mode", params.Mode))

	switch params.Mode {
	case "location":
		payload, err := s.places.TextSearch(ctx, places.TextSearchRequest{
			Query:        fmt.Sprintf("%s %s lodging", params.HotelName, params.City),
			FieldMask:    places.LookupFieldMask,
			IncludedType: "lodging",
			PageSize:     1,
		})
		if err != nil {
			s.recordProviderError(ctx, "hotel lookup", err)
			return &types.HotelAnalysisResult{Status: types.StatusError, Error: err.Error(), Results: []types.NormalizedPlace{}}
		}
		raws := rawPlaces(payload)
		if len(raws) == 0 {
			span.SetStatus(codes.Error, "hotel not found")
			return &types.HotelAnalysisResult{Status: types.StatusError, Error: "Hotel not found", Results: []types.NormalizedPlace{}}
		}
		hotel := places.Normalize(raws[0], "")
		return &types.HotelAnalysisResult{Status: types.StatusSuccess, Hotel: &hotel}

	case "route":
		if params.Origin == nil || params.Destination == nil {
			return &types.HotelAnalysisResult{Status: types.StatusError, Error: "route mode requires origin and destination", Results: []types.NormalizedPlace{}}
		}
		midLat := (params.Origin.Latitude + params.Destination.Latitude) / 2
		midLon := (params.Origin.Longitude + params.Destination.Longitude) / 2
		payload, err := s.places.NearbySearch(ctx, places.NearbySearchRequest{
			Latitude:      midLat,
			Longitude:     midLon,
			RadiusMeters:  routeSearchRadiusMeters,
			FieldMask:     places.RouteFieldMask,
			IncludedTypes: []string{"lodging"},
		})
		if err != nil {
			s.recordProviderError(ctx, "route search", err)
			return &types.HotelAnalysisResult{Status: types.StatusError, Error: err.Error(), Results: []types.NormalizedPlace{}}
		}
		results := make([]types.NormalizedPlace, 0)
		for _, raw := range rawPlaces(payload) {
			results = append(results, places.Normalize(raw, ""))
		}
		return &types.HotelAnalysisResult{Status: types.StatusSuccess, Results: results}

	case "comprehensive":
		base := s.Search(ctx, SearchParams{Location: params.Location, MaxResults: comprehensiveMaxResults})
		return &types.HotelAnalysisResult{Status: types.StatusSuccess, ComprehensiveResults: base.Results}

	default:
		span.SetStatus(codes.Error, "invalid mode")
		return &types.HotelAnalysisResult{Status: types.StatusError, Error: "Invalid mode", Results: []types.NormalizedPlace{}}
	}
}

func (s *ServiceImpl) DetailsAndPrices(ctx context.Context, params DetailsParams) *types.HotelDetailsAndPrices {
	ctx, span := otel.Tracer("HotelService").Start(ctx, "DetailsAndPrices")
	defer span.End()

	var details *types.DetailsResult
	var prices *types.PricesResult

	// The two halves are independent blocking calls; run them together and
	// keep per-half failures in their own sub-results.
	g, gctx := errgroup.WithContext(ctx)
	if params.PlaceID != "" {
		g.Go(func() error {
			details = s.fetchDetails(gctx, params)
			return nil
		})
	}
	if params.CheckIn != "" && params.CheckOut != "" {
		g.Go(func() error {
			prices = s.fetchPrices(gctx, params)
			return nil
		})
	}
	_ = g.Wait()

	status := types.StatusSuccess
	if (details != nil && details.Status != types.StatusSuccess) ||
		(prices != nil && prices.Status != types.StatusSuccess) {
		status = types.StatusPartial
	}
	return &types.HotelDetailsAndPrices{Status: status, Details: details, Prices: prices}
}

func (s *ServiceImpl) fetchDetails(ctx context.Context, params DetailsParams) *types.DetailsResult {
	includePhotos := params.IncludePhotos == nil || *params.IncludePhotos
	includeReviews := params.IncludeReviews == nil || *params.IncludeReviews

	fieldMask := places.DetailsFieldMask
	if includePhotos {
		fieldMask += ",photos"
	}
	if includeReviews {
		fieldMask += ",reviews"
	}

	payload, err := s.places.Details(ctx, places.DetailsRequest{
		PlaceID:   params.PlaceID,
		FieldMask: fieldMask,
	})
	if err != nil {
		s.recordProviderError(ctx, "place details", err)
		return &types.DetailsResult{Status: types.StatusError, Error: fmt.Sprintf("Details fetch failed: %s", err)}
	}

	normalized := places.Normalize(payload, "")
	if includePhotos {
		if photos, ok := payload["photos"].([]any); ok {
			normalized.Photos = photos
		}
	}
	if includeReviews {
		if reviews, ok := payload["reviews"].([]any); ok {
			normalized.Reviews = reviews
		}
	}
	return &types.DetailsResult{Status: types.StatusSuccess, Result: &normalized}
}

func (s *ServiceImpl) fetchPrices(ctx context.Context, params DetailsParams) *types.PricesResult {
	properties, err := s.pricing.SearchPrices(ctx, pricing.Query{
		Location:  params.LocationForPrice,
		HotelName: params.HotelName,
		CheckIn:   params.CheckIn,
		CheckOut:  params.CheckOut,
		Currency:  params.Currency,
		Adults:    params.Adults,
		MinPrice:  params.MinPrice,
		MaxPrice:  params.MaxPrice,
		SortBy:    params.SortBy,
	})
	if err != nil {
		s.recordProviderError(ctx, "pricing", err)
		return &types.PricesResult{Status: types.StatusError, Error: err.Error(), Results: []map[string]any{}}
	}
	return &types.PricesResult{Status: types.StatusSuccess, Results: properties}
}

func (s *ServiceImpl) recordProviderError(ctx context.Context, operation string, err error) {
	s.logger.WarnContext(ctx, "provider call failed",
		slog.String("operation", operation),
		slog.Any("error", err))
	if m := metrics.Get(); m != nil {
		m.ProviderErrorsTotal.Add(ctx, 1)
	}
}

func searchError(message string) *types.HotelSearchResponse {
	return &types.HotelSearchResponse{
		Status:  types.StatusError,
		Error:   message,
		Results: []types.NormalizedPlace{},
	}
}

// dedupeSimilar drops later results that look like the same venue as one
// already kept: identical place ids, or near-identical names within walking
// distance of each other. Providers sometimes list the same hotel twice under
// slightly different names.
func dedupeSimilar(in []types.NormalizedPlace) []types.NormalizedPlace {
	out := make([]types.NormalizedPlace, 0, len(in))
	for _, candidate := range in {
		duplicate := false
		for _, kept := range out {
			if kept.PlaceID != "" && kept.PlaceID == candidate.PlaceID {
				duplicate = true
				break
			}
			if kept.Coordinates == nil || candidate.Coordinates == nil {
				continue
			}
			if NameSimilarity(kept.Name, candidate.Name) >= duplicateNameThreshold &&
				HaversineKm(kept.Coordinates.Latitude, kept.Coordinates.Longitude,
					candidate.Coordinates.Latitude, candidate.Coordinates.Longitude)*1000 <= duplicateDistanceMeters {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, candidate)
		}
	}
	return out
}

// rawPlaces extracts the places list from a provider payload, tolerating its
// absence.
func rawPlaces(payload map[string]any) []map[string]any {
	items, ok := payload["places"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
