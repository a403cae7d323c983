package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/tourgent/go-trip-planner/app/observability/metrics"
	"github.com/tourgent/go-trip-planner/internal/types"
)

const latestFilename = "output.json"

var _ Service = (*ServiceImpl)(nil)

// Service validates itinerary documents and persists them to the archive
// directory, the latest-copy location and (when configured) the database.
// Failures are reported in the SaveResult envelope, never as Go errors.
type Service interface {
	ValidateAndSave(ctx context.Context, rawJSON []byte) *types.SaveResult
}

type ServiceImpl struct {
	logger     *slog.Logger
	repository ItineraryRepository // optional, file sink works without it
	archiveDir string
	latestDir  string
	now        func() time.Time
}

func NewServiceImpl(repository ItineraryRepository, archiveDir, latestDir string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repository: repository,
		archiveDir: archiveDir,
		latestDir:  latestDir,
		now:        time.Now,
	}
}

func (s *ServiceImpl) ValidateAndSave(ctx context.Context, rawJSON []byte) *types.SaveResult {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "ValidateAndSave")
	defer span.End()

	l := s.logger.With(slog.String("service", "ItineraryService"))

	var document map[string]json.RawMessage
	if err := json.Unmarshal(rawJSON, &document); err != nil {
		span.SetStatus(codes.Error, "malformed JSON")
		return saveError(fmt.Sprintf("Invalid JSON format: %s", err))
	}
	if _, ok := document["hotel_information"]; !ok {
		span.SetStatus(codes.Error, "missing hotel_information")
		return saveError("Missing hotel_information in JSON")
	}
	if _, ok := document["day_plans"]; !ok {
		span.SetStatus(codes.Error, "missing day_plans")
		return saveError("Missing day_plans in JSON")
	}

	var itinerary types.ItineraryResponse
	if err := json.Unmarshal(rawJSON, &itinerary); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return saveError(fmt.Sprintf("Itinerary validation failed: %s", err))
	}
	if err := itinerary.Validate(); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return saveError(fmt.Sprintf("Itinerary validation failed: %s", err))
	}

	hotelName := itinerary.HotelInformation.Name
	if hotelName == "" {
		hotelName = "unknown_hotel"
	}
	timestamp := s.now().Format("20060102_150405")
	archiveFilename := fmt.Sprintf("itinerary_%s_%s.json", safeFilename(hotelName), timestamp)
	archivePath := filepath.Join(s.archiveDir, archiveFilename)
	latestPath := filepath.Join(s.latestDir, latestFilename)

	// Re-indenting the raw bytes keeps the input's key order in the file.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, rawJSON, "", "  "); err != nil {
		return saveError(fmt.Sprintf("Error saving itinerary: %s", err))
	}

	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return saveError(fmt.Sprintf("Error saving itinerary: %s", err))
	}
	if err := os.MkdirAll(s.latestDir, 0o755); err != nil {
		return saveError(fmt.Sprintf("Error saving itinerary: %s", err))
	}
	for _, path := range []string{archivePath, latestPath} {
		if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
			return saveError(fmt.Sprintf("Error saving itinerary: %s", err))
		}
	}

	// File persistence is the contract; a database failure only degrades to
	// a warning.
	if s.repository != nil {
		if id, err := s.repository.SaveItinerary(ctx, hotelName, rawJSON, archivePath); err != nil {
			l.WarnContext(ctx, "Failed to persist itinerary to database", slog.Any("error", err))
		} else {
			l.InfoContext(ctx, "Itinerary persisted to database", slog.String("itineraryID", id.String()))
		}
	}

	if m := metrics.Get(); m != nil {
		m.ItinerariesSavedTotal.Add(ctx, 1)
	}
	l.InfoContext(ctx, "Itinerary saved", slog.String("archive", archivePath))

	return &types.SaveResult{
		Status:   types.StatusSuccess,
		Message:  fmt.Sprintf("Itinerary saved to archive (%s) and latest (%s)", archiveFilename, latestFilename),
		FilePath: fmt.Sprintf("archive: %s, latest: %s", archivePath, latestPath),
	}
}

func saveError(message string) *types.SaveResult {
	return &types.SaveResult{
		Status:   types.StatusError,
		Message:  message,
		FilePath: "none",
	}
}

// safeFilename keeps letters, digits, hyphens and underscores, turning spaces
// into underscores.
func safeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
}
