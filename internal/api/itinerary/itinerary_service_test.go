package itinerary

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tourgent/go-trip-planner/internal/types"
)

// MockItineraryRepository is a mock implementation of ItineraryRepository
type MockItineraryRepository struct {
	mock.Mock
}

func (m *MockItineraryRepository) SaveItinerary(ctx context.Context, hotelName string, document []byte, filePath string) (uuid.UUID, error) {
	args := m.Called(ctx, hotelName, document, filePath)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockItineraryRepository) GetItinerary(ctx context.Context, id uuid.UUID) (*SavedItinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SavedItinerary), args.Error(1)
}

func (m *MockItineraryRepository) ListItineraries(ctx context.Context, limit int) ([]SavedItinerary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SavedItinerary), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func validItineraryJSON() []byte {
	return []byte(`{
		"hotel_information": {
			"name": "Grand Plaza Hotel",
			"place_id": "hotel-1",
			"lat": 38.71,
			"lon": -9.14,
			"check_in": "01.07.2025",
			"check_out": "05.07.2025"
		},
		"day_plans": [
			{
				"order": 1,
				"date": "01.07.2025",
				"summary": "Old town walking day",
				"places": [
					{"order": 1, "place_id": "p1", "name": "Castle", "lat": 38.7139, "lon": -9.1334, "time": "10:00"},
					{"order": 2, "place_id": "p2", "name": "Cathedral", "lat": 38.7098, "lon": -9.1330, "time": "14:00"}
				]
			}
		]
	}`)
}

func newTestService(t *testing.T, repo ItineraryRepository) (*ServiceImpl, string, string) {
	t.Helper()
	archiveDir := filepath.Join(t.TempDir(), "output")
	latestDir := t.TempDir()
	svc := NewServiceImpl(repo, archiveDir, latestDir, testLogger())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc, archiveDir, latestDir
}

func TestValidateAndSave_WritesArchiveAndLatest(t *testing.T) {
	svc, archiveDir, latestDir := newTestService(t, nil)

	result := svc.ValidateAndSave(context.Background(), validItineraryJSON())

	require.Equal(t, types.StatusSuccess, result.Status)
	assert.Contains(t, result.Message, "itinerary_Grand_Plaza_Hotel_20250615_103000.json")

	archivePath := filepath.Join(archiveDir, "itinerary_Grand_Plaza_Hotel_20250615_103000.json")
	latestPath := filepath.Join(latestDir, "output.json")
	archiveBytes, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	latestBytes, err := os.ReadFile(latestPath)
	require.NoError(t, err)
	assert.Equal(t, archiveBytes, latestBytes)

	// The written document is valid JSON with the original top-level keys.
	var written map[string]any
	require.NoError(t, json.Unmarshal(archiveBytes, &written))
	assert.Contains(t, written, "hotel_information")
	assert.Contains(t, written, "day_plans")
}

func TestValidateAndSave_MissingDayPlans(t *testing.T) {
	svc, archiveDir, _ := newTestService(t, nil)

	result := svc.ValidateAndSave(context.Background(), []byte(`{"hotel_information": {"name": "X"}}`))

	assert.Equal(t, types.StatusError, result.Status)
	assert.Equal(t, "Missing day_plans in JSON", result.Message)
	assert.Equal(t, "none", result.FilePath)
	// No file may be written on rejection.
	_, err := os.Stat(archiveDir)
	assert.True(t, os.IsNotExist(err))
}

func TestValidateAndSave_MissingHotelInformation(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	result := svc.ValidateAndSave(context.Background(), []byte(`{"day_plans": []}`))

	assert.Equal(t, types.StatusError, result.Status)
	assert.Equal(t, "Missing hotel_information in JSON", result.Message)
}

func TestValidateAndSave_MalformedJSON(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	result := svc.ValidateAndSave(context.Background(), []byte(`{not json`))

	assert.Equal(t, types.StatusError, result.Status)
	assert.Contains(t, result.Message, "Invalid JSON format")
	assert.Equal(t, "none", result.FilePath)
}

func TestValidateAndSave_StructuralValidationRejectsGappedOrders(t *testing.T) {
	svc, archiveDir, _ := newTestService(t, nil)

	doc := []byte(`{
		"hotel_information": {"name": "Grand Plaza", "place_id": "hotel-1", "lat": 38.71, "lon": -9.14},
		"day_plans": [
			{"order": 1, "date": "01.07.2025", "summary": "Day one", "places": [
				{"order": 1, "place_id": "p1", "name": "Castle", "lat": 38.7139, "lon": -9.1334, "time": "10:00"},
				{"order": 3, "place_id": "p3", "name": "Cathedral", "lat": 38.7098, "lon": -9.1330, "time": "14:00"}
			]}
		]
	}`)

	result := svc.ValidateAndSave(context.Background(), doc)

	assert.Equal(t, types.StatusError, result.Status)
	assert.Contains(t, result.Message, "Itinerary validation failed")
	_, err := os.Stat(archiveDir)
	assert.True(t, os.IsNotExist(err))
}

func TestValidateAndSave_RejectsPlaceWithoutCoordinates(t *testing.T) {
	svc, archiveDir, _ := newTestService(t, nil)

	doc := []byte(`{
		"hotel_information": {"name": "Grand Plaza", "place_id": "hotel-1", "lat": 38.71, "lon": -9.14},
		"day_plans": [
			{"order": 1, "date": "01.07.2025", "summary": "Day one", "places": [
				{"order": 1, "name": "Louvre"}
			]}
		]
	}`)

	result := svc.ValidateAndSave(context.Background(), doc)

	assert.Equal(t, types.StatusError, result.Status)
	assert.Contains(t, result.Message, "Itinerary validation failed")
	assert.Contains(t, result.Message, "place.place_id")
	_, err := os.Stat(archiveDir)
	assert.True(t, os.IsNotExist(err))
}

func TestValidateAndSave_PersistsToRepository(t *testing.T) {
	mockRepo := new(MockItineraryRepository)
	svc, archiveDir, _ := newTestService(t, mockRepo)

	expectedPath := filepath.Join(archiveDir, "itinerary_Grand_Plaza_Hotel_20250615_103000.json")
	mockRepo.On("SaveItinerary", mock.Anything, "Grand Plaza Hotel", mock.Anything, expectedPath).
		Return(uuid.New(), nil)

	result := svc.ValidateAndSave(context.Background(), validItineraryJSON())

	assert.Equal(t, types.StatusSuccess, result.Status)
	mockRepo.AssertExpectations(t)
}

func TestValidateAndSave_RepositoryFailureStillSucceeds(t *testing.T) {
	mockRepo := new(MockItineraryRepository)
	svc, _, _ := newTestService(t, mockRepo)

	mockRepo.On("SaveItinerary", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(uuid.Nil, assert.AnError)

	result := svc.ValidateAndSave(context.Background(), validItineraryJSON())

	assert.Equal(t, types.StatusSuccess, result.Status)
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grand Plaza Hotel", "Grand_Plaza_Hotel"},
		{"Chez l'Ami & Co.", "Chez_lAmi__Co"},
		{"Hotel-Name_1", "Hotel-Name_1"},
		{"  trailing  ", "__trailing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeFilename(tt.in), "input %q", tt.in)
	}
}
