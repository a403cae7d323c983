package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tourgent/go-trip-planner/internal/types"
)

const (
	defaultEndpoint = "https://serpapi.com/search.json"
	requestTimeout  = 30 * time.Second
	stayDateFormat  = "2006-01-02"
)

// Query asks the aggregator for nightly hotel prices.
type Query struct {
	Location  string
	HotelName string
	CheckIn   string // yyyy-mm-dd
	CheckOut  string // yyyy-mm-dd
	Currency  string
	Adults    int
	MinPrice  int
	MaxPrice  int
	SortBy    int
}

// Client is the hotel-pricing capability. Properties keep the aggregator's
// raw shape; failures come back as *types.ProviderError.
type Client interface {
	SearchPrices(ctx context.Context, q Query) ([]map[string]any, error)
}

var _ Client = (*HTTPClient)(nil)

// HTTPClient queries the SerpAPI google_hotels engine.
type HTTPClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *slog.Logger
	now      func() time.Time
}

func NewHTTPClient(endpoint, apiKey string, logger *slog.Logger) *HTTPClient {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: requestTimeout},
		logger:   logger,
		now:      time.Now,
	}
}

func (c *HTTPClient) SearchPrices(ctx context.Context, q Query) ([]map[string]any, error) {
	if c.apiKey == "" {
		return nil, providerErr(0, "pricing API key is not configured")
	}
	checkIn, checkOut := ValidateStayDates(q.CheckIn, q.CheckOut, c.now())

	searchQuery := q.Location
	if q.HotelName != "" {
		searchQuery = q.HotelName + " " + q.Location
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("api_key", c.apiKey)
	params.Set("q", strings.TrimSpace(searchQuery))
	params.Set("check_in_date", checkIn)
	params.Set("check_out_date", checkOut)
	params.Set("currency", currencyOrDefault(q.Currency))
	params.Set("adults", strconv.Itoa(adultsOrDefault(q.Adults)))
	params.Set("sort_by", strconv.Itoa(sortByOrDefault(q.SortBy)))
	if q.MinPrice > 0 {
		params.Set("min_price", strconv.Itoa(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		params.Set("max_price", strconv.Itoa(q.MaxPrice))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, providerErr(0, err.Error())
	}

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
		c.logger.Warn("pricing request failed", slog.Int("status", resp.StatusCode))
		return nil, providerErr(resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload struct {
		Error      json.RawMessage  `json:"error"`
		Properties []map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, providerErr(resp.StatusCode, "malformed JSON response: "+err.Error())
	}
	if len(payload.Error) > 0 {
		return nil, providerErr(resp.StatusCode, strings.Trim(string(payload.Error), `"`))
	}
	return payload.Properties, nil
}

// ValidateStayDates sanitizes a check-in/check-out pair. Unparseable or
// past-dated check-ins fall back to a stay 7 days out lasting 5 nights; a
// check-out that is not after check-in is pushed to check-in + 1 day.
func ValidateStayDates(checkIn, checkOut string, now time.Time) (string, string) {
	in, errIn := time.Parse(stayDateFormat, checkIn)
	out, errOut := time.Parse(stayDateFormat, checkOut)
	if errIn != nil || errOut != nil {
		in = now.AddDate(0, 0, 7)
		return in.Format(stayDateFormat), in.AddDate(0, 0, 5).Format(stayDateFormat)
	}
	if !in.After(now) {
		in = now.AddDate(0, 0, 7)
		out = in.AddDate(0, 0, 5)
	} else if !out.After(in) {
		out = in.AddDate(0, 0, 1)
	}
	return in.Format(stayDateFormat), out.Format(stayDateFormat)
}

func providerErr(status int, msg string) *types.ProviderError {
	return &types.ProviderError{Provider: "pricing", StatusCode: status, Message: msg}
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "EUR"
	}
	return strings.ToUpper(c)
}

func adultsOrDefault(n int) int {
	if n <= 0 {
		return 2
	}
	return n
}

func sortByOrDefault(n int) int {
	if n <= 0 {
		return 3
	}
	return n
}

// String implements fmt.Stringer for request logging without the API key.
func (q Query) String() string {
	return fmt.Sprintf("pricing query %q (%s to %s)", q.Location, q.CheckIn, q.CheckOut)
}
