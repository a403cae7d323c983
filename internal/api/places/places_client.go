package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tourgent/go-trip-planner/internal/types"
)

const (
	defaultBaseURL = "https://places.googleapis.com/v1"

	// SearchFieldMask covers everything the search engine normalizes.
	SearchFieldMask = "places.id,places.displayName,places.formattedAddress," +
		"places.location,places.rating,places.userRatingCount," +
		"places.priceLevel,places.types,places.websiteUri," +
		"places.internationalPhoneNumber,places.currentOpeningHours"

	// LookupFieldMask is the minimal mask for exact-match hotel resolution.
	LookupFieldMask = "places.id,places.displayName,places.location,places.formattedAddress"

	// RouteFieldMask is used for midpoint searches along a route.
	RouteFieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.rating"

	// DetailsFieldMask is the base mask for single-place details.
	DetailsFieldMask = "id,displayName,formattedAddress,location,rating,userRatingCount," +
		"priceLevel,types,websiteUri,internationalPhoneNumber," +
		"currentOpeningHours,regularOpeningHours,accessibilityOptions"
)

// Client is the place-search capability consumed by the hotel search engine.
// Implementations return the provider payload as a generic map; the engine
// normalizes it. Failures come back as *types.ProviderError.
type Client interface {
	TextSearch(ctx context.Context, req TextSearchRequest) (map[string]any, error)
	NearbySearch(ctx context.Context, req NearbySearchRequest) (map[string]any, error)
	Details(ctx context.Context, req DetailsRequest) (map[string]any, error)
}

// TextSearchRequest mirrors the provider's searchText body; zero values are
// omitted from the wire request.
type TextSearchRequest struct {
	Query        string
	FieldMask    string
	IncludedType string
	MinRating    float64
	PriceLevels  []string
	OpenNow      *bool
	PageSize     int
	LanguageCode string
}

// NearbySearchRequest mirrors the provider's searchNearby body.
type NearbySearchRequest struct {
	Latitude       float64
	Longitude      float64
	RadiusMeters   float64
	FieldMask      string
	IncludedTypes  []string
	MaxResultCount int
	LanguageCode   string
}

// DetailsRequest fetches one place by id.
type DetailsRequest struct {
	PlaceID      string
	FieldMask    string
	LanguageCode string
}

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the Places API over HTTP with an API-key header.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) TextSearch(ctx context.Context, req TextSearchRequest) (map[string]any, error) {
	if req.Query == "" {
		return nil, providerErr(0, "text query is required")
	}
	body := map[string]any{
		"textQuery":    req.Query,
		"pageSize":     clampPageSize(req.PageSize),
		"languageCode": langOrDefault(req.LanguageCode),
	}
	if req.IncludedType != "" {
		body["includedType"] = req.IncludedType
	}
	if req.MinRating > 0 {
		// The provider only accepts half-star increments.
		body["minRating"] = float64(int(req.MinRating*2+0.5)) / 2
	}
	if len(req.PriceLevels) > 0 {
		body["priceLevels"] = req.PriceLevels
	}
	if req.OpenNow != nil {
		body["openNow"] = *req.OpenNow
	}
	return c.post(ctx, "/places:searchText", fieldMaskOrAll(req.FieldMask), body)
}

func (c *HTTPClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (map[string]any, error) {
	if req.RadiusMeters <= 0 || req.RadiusMeters > 50000 {
		return nil, providerErr(0, "radius must be between 0 and 50000 meters")
	}
	body := map[string]any{
		"locationRestriction": map[string]any{
			"circle": map[string]any{
				"center": map[string]any{
					"latitude":  req.Latitude,
					"longitude": req.Longitude,
				},
				"radius": req.RadiusMeters,
			},
		},
		"maxResultCount": clampPageSize(req.MaxResultCount),
		"languageCode":   langOrDefault(req.LanguageCode),
	}
	if len(req.IncludedTypes) > 0 {
		body["includedTypes"] = req.IncludedTypes
	}
	return c.post(ctx, "/places:searchNearby", fieldMaskOrAll(req.FieldMask), body)
}

func (c *HTTPClient) Details(ctx context.Context, req DetailsRequest) (map[string]any, error) {
	if req.PlaceID == "" {
		return nil, providerErr(0, "place_id is required")
	}
	placeID := strings.TrimPrefix(req.PlaceID, "places/")
	url := fmt.Sprintf("%s/places/%s?languageCode=%s", c.baseURL, placeID, langOrDefault(req.LanguageCode))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, providerErr(0, err.Error())
	}
	c.setHeaders(httpReq, fieldMaskOrAll(req.FieldMask))
	return c.do(httpReq)
}

func (c *HTTPClient) post(ctx context.Context, path, fieldMask string, body map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, providerErr(0, err.Error())
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, providerErr(0, err.Error())
	}
	c.setHeaders(httpReq, fieldMask)
	return c.do(httpReq)
}

func (c *HTTPClient) setHeaders(req *http.Request, fieldMask string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
}

func (c *HTTPClient) do(req *http.Request) (map[string]any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, providerErr(0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providerErr(resp.StatusCode, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("places request failed",
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode))
		return nil, providerErr(resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, providerErr(resp.StatusCode, "malformed JSON response: "+err.Error())
	}
	// Some failures come back as 200s with an error body.
	if msg, ok := payload["error"]; ok {
		return nil, providerErr(resp.StatusCode, fmt.Sprintf("%v", msg))
	}
	return payload, nil
}

func providerErr(status int, msg string) *types.ProviderError {
	return &types.ProviderError{Provider: "places", StatusCode: status, Message: msg}
}

func clampPageSize(n int) int {
	if n < 1 {
		return 20
	}
	if n > 20 {
		return 20
	}
	return n
}

func langOrDefault(code string) string {
	if code == "" {
		return "en"
	}
	return code
}

func fieldMaskOrAll(mask string) string {
	if mask == "" {
		return "*"
	}
	return mask
}
