package itinerary

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tourgent/go-trip-planner/internal/api"
	"github.com/tourgent/go-trip-planner/internal/types"
)

const maxItineraryBytes = 1 << 20

type ItineraryHandler struct {
	itineraryService Service
	repository       ItineraryRepository
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService Service, repository ItineraryRepository, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		repository:       repository,
		logger:           logger,
	}
}

// SaveItinerary validates the posted itinerary document and persists it.
func (h *ItineraryHandler) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SaveItinerary").Start(r.Context(), "SaveItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SaveItinerary"))
	l.DebugContext(ctx, "Save itinerary handler invoked")

	r.Body = http.MaxBytesReader(w, r.Body, maxItineraryBytes)
	rawJSON, err := io.ReadAll(r.Body)
	if err != nil {
		l.ErrorContext(ctx, "Failed to read request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result := h.itineraryService.ValidateAndSave(ctx, rawJSON)
	if result.Status == types.StatusError {
		l.WarnContext(ctx, "Itinerary rejected", slog.String("message", result.Message))
		api.WriteJSONResponse(w, r, http.StatusUnprocessableEntity, result)
		return
	}

	l.InfoContext(ctx, "Itinerary saved successfully")
	api.WriteJSONResponse(w, r, http.StatusCreated, result)
}

// GetItinerary fetches one stored itinerary by id.
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetItinerary").Start(r.Context(), "GetItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetItinerary"))

	idStr := chi.URLParam(r, "itineraryID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.ErrorContext(ctx, "Invalid itinerary ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	saved, err := h.repository.GetItinerary(ctx, id)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch itinerary")
		return
	}
	if saved == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, saved)
}

// ListItineraries returns the most recently stored itineraries.
func (h *ItineraryHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ListItineraries").Start(r.Context(), "ListItineraries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListItineraries"))

	itineraries, err := h.repository.ListItineraries(ctx, 20)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list itineraries")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, itineraries)
}
