package pricing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourgent/go-trip-planner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestValidateStayDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("past check-in replaced with default stay", func(t *testing.T) {
		in, out := ValidateStayDates("2025-05-01", "2025-05-05", now)
		assert.Equal(t, "2025-06-08", in)
		assert.Equal(t, "2025-06-13", out)
	})

	t.Run("unparseable dates replaced with default stay", func(t *testing.T) {
		in, out := ValidateStayDates("soon", "later", now)
		assert.Equal(t, "2025-06-08", in)
		assert.Equal(t, "2025-06-13", out)
	})

	t.Run("check-out not after check-in pushed one day", func(t *testing.T) {
		in, out := ValidateStayDates("2025-07-10", "2025-07-10", now)
		assert.Equal(t, "2025-07-10", in)
		assert.Equal(t, "2025-07-11", out)
	})

	t.Run("valid pair untouched", func(t *testing.T) {
		in, out := ValidateStayDates("2025-07-10", "2025-07-14", now)
		assert.Equal(t, "2025-07-10", in)
		assert.Equal(t, "2025-07-14", out)
	})
}

func TestSearchPricesParams(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"properties": []any{map[string]any{"name": "Pera Palace"}},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret", testLogger())
	props, err := client.SearchPrices(context.Background(), Query{
		Location:  "Istanbul",
		HotelName: "Pera Palace",
		CheckIn:   "2099-01-10",
		CheckOut:  "2099-01-13",
		Currency:  "usd",
	})
	require.NoError(t, err)
	require.Len(t, props, 1)

	assert.Equal(t, "google_hotels", gotQuery["engine"])
	assert.Equal(t, "Pera Palace Istanbul", gotQuery["q"])
	assert.Equal(t, "2099-01-10", gotQuery["check_in_date"])
	assert.Equal(t, "2099-01-13", gotQuery["check_out_date"])
	assert.Equal(t, "USD", gotQuery["currency"])
	assert.Equal(t, "2", gotQuery["adults"])
	assert.Equal(t, "3", gotQuery["sort_by"])
}

func TestSearchPricesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "no results"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret", testLogger())
	_, err := client.SearchPrices(context.Background(), Query{Location: "Nowhere"})
	var perr *types.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "no results")
}

func TestSearchPricesMissingKey(t *testing.T) {
	client := NewHTTPClient("http://unused", "", testLogger())
	_, err := client.SearchPrices(context.Background(), Query{Location: "Istanbul"})
	var perr *types.ProviderError
	require.ErrorAs(t, err, &perr)
}
