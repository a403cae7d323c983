package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/tourgent/go-trip-planner/internal/api/hotels"
	"github.com/tourgent/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Generator produces model completions. Satisfied by generativeAI.AIClient.
type Generator interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Service turns a validated trip request into a full itinerary.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	generator    Generator
	hotelService hotels.Service // optional, enriches the prompt with real candidates
}

func NewServiceImpl(generator Generator, hotelService hotels.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		generator:    generator,
		hotelService: hotelService,
	}
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GenerateItinerary")
	defer span.End()
	span.SetAttributes(attribute.String("trip.city", req.City))

	l := s.logger.With(slog.String("service", "PlannerService"), slog.String("city", req.City))

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	var hotelCandidates []types.NormalizedPlace
	if s.hotelService != nil {
		analysis := s.hotelService.Analyze(ctx, hotels.AnalyzeParams{
			Mode:     "comprehensive",
			Location: fmt.Sprintf("%s, %s", req.City, req.Country),
		})
		if analysis.Status == types.StatusSuccess {
			hotelCandidates = analysis.ComprehensiveResults
		} else {
			l.WarnContext(ctx, "Hotel candidate lookup failed, planning without candidates",
				slog.String("error", analysis.Error))
		}
	}

	prompt := getItineraryPrompt(req, hotelCandidates)
	response, err := s.generator.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.5),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	txt := extractText(response)
	if txt == "" {
		span.SetStatus(codes.Error, "empty response")
		return nil, fmt.Errorf("model returned no itinerary text")
	}

	var itinerary types.ItineraryResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(txt)), &itinerary); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable itinerary")
		return nil, fmt.Errorf("failed to parse generated itinerary: %w", err)
	}
	if err := itinerary.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid itinerary")
		return nil, fmt.Errorf("generated itinerary failed validation: %w", err)
	}

	l.InfoContext(ctx, "Itinerary generated", slog.Int("days", len(itinerary.DayPlans)))
	span.SetStatus(codes.Ok, "itinerary generated")
	return &itinerary, nil
}

func extractText(response *genai.GenerateContentResponse) string {
	if response == nil {
		return ""
	}
	for _, candidate := range response.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		if txt := candidate.Content.Parts[0].Text; txt != "" {
			return txt
		}
	}
	return ""
}

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Remove markdown code block markers
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}

	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	return strings.TrimSpace(response)
}
