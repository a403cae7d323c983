package planner

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tourgent/go-trip-planner/internal/api"
	"github.com/tourgent/go-trip-planner/internal/types"
)

type PlannerHandler struct {
	plannerService Service
	logger         *slog.Logger
}

func NewPlannerHandler(plannerService Service, logger *slog.Logger) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
		logger:         logger,
	}
}

// PlanItinerary generates a full itinerary for the posted trip request.
func (h *PlannerHandler) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanItinerary").Start(r.Context(), "PlanItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/planner/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanItinerary"))
	l.DebugContext(ctx, "Plan itinerary handler invoked")

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.plannerService.GenerateItinerary(ctx, req)
	if err != nil {
		var validationErr *types.ValidationError
		if errors.As(err, &validationErr) {
			l.ErrorContext(ctx, "Invalid trip request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "Failed to generate itinerary")
		return
	}

	l.InfoContext(ctx, "Itinerary generated successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}
