package planner

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/tourgent/go-trip-planner/internal/api/hotels"
	"github.com/tourgent/go-trip-planner/internal/types"
)

// MockGenerator is a mock implementation of Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

// MockHotelService is a mock implementation of hotels.Service
type MockHotelService struct {
	mock.Mock
}

func (m *MockHotelService) Search(ctx context.Context, params hotels.SearchParams) *types.HotelSearchResponse {
	args := m.Called(ctx, params)
	return args.Get(0).(*types.HotelSearchResponse)
}

func (m *MockHotelService) Analyze(ctx context.Context, params hotels.AnalyzeParams) *types.HotelAnalysisResult {
	args := m.Called(ctx, params)
	return args.Get(0).(*types.HotelAnalysisResult)
}

func (m *MockHotelService) DetailsAndPrices(ctx context.Context, params hotels.DetailsParams) *types.HotelDetailsAndPrices {
	args := m.Called(ctx, params)
	return args.Get(0).(*types.HotelDetailsAndPrices)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

const validItineraryText = `{
	"hotel_information": {"name": "Grand Plaza", "place_id": "hotel-1", "lat": 38.71, "lon": -9.14, "check_in": "01.07.2025", "check_out": "03.07.2025"},
	"day_plans": [
		{"order": 1, "date": "01.07.2025", "summary": "Old town", "places": [
			{"order": 1, "place_id": "p1", "name": "Castle", "lat": 38.7139, "lon": -9.1334, "time": "10:00"}
		]},
		{"order": 2, "date": "02.07.2025", "summary": "Waterfront", "places": [
			{"order": 1, "place_id": "p2", "name": "Aquarium", "lat": 38.7633, "lon": -9.0950, "time": "11:00"}
		]}
	]
}`

func tripRequest() types.ItineraryRequest {
	return types.ItineraryRequest{
		City:    "Lisbon",
		Country: "Portugal",
		Date: types.DateRange{
			StartDate:    "01.07.2025",
			NumberOfDays: 2,
		},
		People:      types.NewTravelerInfo(),
		Preferences: types.NewPreferences(),
	}
}

func TestGenerateItinerary_Success(t *testing.T) {
	mockGen := new(MockGenerator)
	svc := NewServiceImpl(mockGen, nil, testLogger())

	mockGen.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Lisbon, Portugal") && strings.Contains(prompt, "dd.mm.yyyy")
	}), mock.Anything).Return(textResponse(validItineraryText), nil)

	itinerary, err := svc.GenerateItinerary(context.Background(), tripRequest())

	require.NoError(t, err)
	assert.Equal(t, "Grand Plaza", itinerary.HotelInformation.Name)
	assert.Len(t, itinerary.DayPlans, 2)
	mockGen.AssertExpectations(t)
}

func TestGenerateItinerary_StripsMarkdownFences(t *testing.T) {
	mockGen := new(MockGenerator)
	svc := NewServiceImpl(mockGen, nil, testLogger())

	fenced := "```json\n" + validItineraryText + "\n```"
	mockGen.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(fenced), nil)

	itinerary, err := svc.GenerateItinerary(context.Background(), tripRequest())

	require.NoError(t, err)
	assert.Equal(t, "Grand Plaza", itinerary.HotelInformation.Name)
}

func TestGenerateItinerary_IncludesHotelCandidates(t *testing.T) {
	mockGen := new(MockGenerator)
	mockHotels := new(MockHotelService)
	svc := NewServiceImpl(mockGen, mockHotels, testLogger())

	mockHotels.On("Analyze", mock.Anything, mock.MatchedBy(func(p hotels.AnalyzeParams) bool {
		return p.Mode == "comprehensive" && p.Location == "Lisbon, Portugal"
	})).Return(&types.HotelAnalysisResult{
		Status: types.StatusSuccess,
		ComprehensiveResults: []types.NormalizedPlace{
			{Name: "Grand Plaza"}, {Name: "Hotel Avenida"},
		},
	})
	mockGen.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Grand Plaza; Hotel Avenida")
	}), mock.Anything).Return(textResponse(validItineraryText), nil)

	_, err := svc.GenerateItinerary(context.Background(), tripRequest())

	require.NoError(t, err)
	mockHotels.AssertExpectations(t)
	mockGen.AssertExpectations(t)
}

func TestGenerateItinerary_HotelLookupFailureDegrades(t *testing.T) {
	mockGen := new(MockGenerator)
	mockHotels := new(MockHotelService)
	svc := NewServiceImpl(mockGen, mockHotels, testLogger())

	mockHotels.On("Analyze", mock.Anything, mock.Anything).
		Return(&types.HotelAnalysisResult{Status: types.StatusError, Error: "provider down"})
	mockGen.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return !strings.Contains(prompt, "verified candidates")
	}), mock.Anything).Return(textResponse(validItineraryText), nil)

	_, err := svc.GenerateItinerary(context.Background(), tripRequest())

	require.NoError(t, err)
	mockGen.AssertExpectations(t)
}

func TestGenerateItinerary_InvalidRequest(t *testing.T) {
	svc := NewServiceImpl(new(MockGenerator), nil, testLogger())

	_, err := svc.GenerateItinerary(context.Background(), types.ItineraryRequest{Country: "Portugal"})

	require.Error(t, err)
	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGenerateItinerary_GenerationFailure(t *testing.T) {
	mockGen := new(MockGenerator)
	svc := NewServiceImpl(mockGen, nil, testLogger())

	mockGen.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, err := svc.GenerateItinerary(context.Background(), tripRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate itinerary")
}

func TestGenerateItinerary_ModelReturnsInvalidItinerary(t *testing.T) {
	mockGen := new(MockGenerator)
	svc := NewServiceImpl(mockGen, nil, testLogger())

	// Day plan orders with a gap must be rejected.
	gapped := `{
		"hotel_information": {"name": "Grand Plaza", "place_id": "hotel-1", "lat": 38.71, "lon": -9.14},
		"day_plans": [
			{"order": 1, "date": "01.07.2025", "summary": "Day one", "places": []},
			{"order": 3, "date": "03.07.2025", "summary": "Day three", "places": []}
		]
	}`
	mockGen.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(gapped), nil)

	_, err := svc.GenerateItinerary(context.Background(), tripRequest())

	require.Error(t, err)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse(`  {"a":1}  `))
}
