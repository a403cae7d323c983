package hotels

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tourgent/go-trip-planner/internal/api"
	"github.com/tourgent/go-trip-planner/internal/types"
)

type HotelHandler struct {
	hotelService Service
	logger       *slog.Logger
}

func NewHotelHandler(hotelService Service, logger *slog.Logger) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelService,
		logger:       logger,
	}
}

// SearchHotels runs a location or nearby hotel search.
func (h *HotelHandler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchHotels").Start(r.Context(), "SearchHotels", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchHotels"))
	l.DebugContext(ctx, "Search hotels handler invoked")

	var params SearchParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := h.hotelService.Search(ctx, params)
	if result.Status == types.StatusError {
		l.WarnContext(ctx, "Hotel search returned error status", slog.String("error", result.Error))
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// AnalyzeHotels runs the combined hotel analysis in one of its three modes.
func (h *HotelHandler) AnalyzeHotels(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AnalyzeHotels").Start(r.Context(), "AnalyzeHotels", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/analyze"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AnalyzeHotels"))
	l.DebugContext(ctx, "Analyze hotels handler invoked")

	var params AnalyzeParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if params.Mode == "" {
		l.ErrorContext(ctx, "Analysis mode is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Analysis mode is required")
		return
	}

	result := h.hotelService.Analyze(ctx, params)
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetDetailsAndPrices fetches place details and live nightly prices.
func (h *HotelHandler) GetDetailsAndPrices(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetDetailsAndPrices").Start(r.Context(), "GetDetailsAndPrices", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/details"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetDetailsAndPrices"))
	l.DebugContext(ctx, "Details and prices handler invoked")

	var params DetailsParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if params.PlaceID == "" && (params.CheckIn == "" || params.CheckOut == "") {
		l.ErrorContext(ctx, "Neither place ID nor stay dates provided")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Provide place_id for details, or check_in and check_out for prices")
		return
	}

	result := h.hotelService.DetailsAndPrices(ctx, params)
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}
