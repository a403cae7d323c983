package itinerary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveItinerary_InsertsRow(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewItineraryRepository(mockPool, testLogger())
	id := uuid.New()
	document := []byte(`{"hotel_information":{},"day_plans":[]}`)

	mockPool.ExpectQuery("INSERT INTO saved_itineraries").
		WithArgs("Grand Plaza", document, "/output/itinerary_Grand_Plaza_20250615_103000.json").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))

	got, err := repo.SaveItinerary(context.Background(), "Grand Plaza", document, "/output/itinerary_Grand_Plaza_20250615_103000.json")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSaveItinerary_InsertFailure(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewItineraryRepository(mockPool, testLogger())

	mockPool.ExpectQuery("INSERT INTO saved_itineraries").
		WithArgs("Grand Plaza", []byte(`{}`), "/output/x.json").
		WillReturnError(assert.AnError)

	_, err = repo.SaveItinerary(context.Background(), "Grand Plaza", []byte(`{}`), "/output/x.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert itinerary")
}

func TestGetItinerary_NotFoundReturnsNil(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewItineraryRepository(mockPool, testLogger())
	id := uuid.New()

	mockPool.ExpectQuery("SELECT id, hotel_name, document, file_path, created_at").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "hotel_name", "document", "file_path", "created_at"}))

	saved, err := repo.GetItinerary(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestListItineraries_ScansRows(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewItineraryRepository(mockPool, testLogger())
	now := time.Now()

	mockPool.ExpectQuery("SELECT id, hotel_name, document, file_path, created_at").
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "hotel_name", "document", "file_path", "created_at"}).
			AddRow(uuid.New(), "Grand Plaza", []byte(`{}`), "/output/a.json", now).
			AddRow(uuid.New(), "Ritz", []byte(`{}`), "/output/b.json", now))

	itineraries, err := repo.ListItineraries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, itineraries, 2)
	assert.Equal(t, "Grand Plaza", itineraries[0].HotelName)
	assert.Equal(t, "Ritz", itineraries[1].HotelName)
}
