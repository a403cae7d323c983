package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ItineraryRepository = (*PostgresItineraryRepository)(nil)
var _ Querier = (*pgxpool.Pool)(nil)

// Querier is the subset of pgxpool.Pool the repository needs; it lets tests
// substitute a pgxmock pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SavedItinerary is one persisted itinerary document.
type SavedItinerary struct {
	ID        uuid.UUID `json:"id"`
	HotelName string    `json:"hotel_name"`
	Document  []byte    `json:"document"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

type ItineraryRepository interface {
	SaveItinerary(ctx context.Context, hotelName string, document []byte, filePath string) (uuid.UUID, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*SavedItinerary, error)
	ListItineraries(ctx context.Context, limit int) ([]SavedItinerary, error)
}

type PostgresItineraryRepository struct {
	logger *slog.Logger
	pgpool Querier
}

func NewItineraryRepository(pgpool Querier, logger *slog.Logger) *PostgresItineraryRepository {
	return &PostgresItineraryRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresItineraryRepository) SaveItinerary(ctx context.Context, hotelName string, document []byte, filePath string) (uuid.UUID, error) {
	query := `
        INSERT INTO saved_itineraries (
            hotel_name, document, file_path
        ) VALUES ($1, $2, $3) RETURNING id
    `
	var id uuid.UUID
	if err := r.pgpool.QueryRow(ctx, query, hotelName, document, filePath).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return id, nil
}

func (r *PostgresItineraryRepository) GetItinerary(ctx context.Context, id uuid.UUID) (*SavedItinerary, error) {
	query := `
        SELECT id, hotel_name, document, file_path, created_at
        FROM saved_itineraries
        WHERE id = $1
    `
	var saved SavedItinerary
	if err := r.pgpool.QueryRow(ctx, query, id).Scan(
		&saved.ID, &saved.HotelName, &saved.Document, &saved.FilePath, &saved.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	return &saved, nil
}

func (r *PostgresItineraryRepository) ListItineraries(ctx context.Context, limit int) ([]SavedItinerary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
        SELECT id, hotel_name, document, file_path, created_at
        FROM saved_itineraries
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.pgpool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []SavedItinerary
	for rows.Next() {
		var saved SavedItinerary
		if err := rows.Scan(&saved.ID, &saved.HotelName, &saved.Document, &saved.FilePath, &saved.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		itineraries = append(itineraries, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itinerary rows: %w", err)
	}
	return itineraries, nil
}
