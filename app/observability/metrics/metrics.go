package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	HotelSearchesTotal    metric.Int64Counter
	ProviderErrorsTotal   metric.Int64Counter
	SearchDurationSeconds metric.Float64Histogram
	ItinerariesSavedTotal metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripPlanner")
		var err error
		m := &AppMetrics{}

		m.HotelSearchesTotal, err = meter.Int64Counter(
			"hotel_searches_total",
			metric.WithDescription("Total number of hotel searches performed"),
			metric.WithUnit("{search}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create hotel_searches_total: %v", err)
		}

		m.ProviderErrorsTotal, err = meter.Int64Counter(
			"provider_errors_total",
			metric.WithDescription("Total number of provider-level failures"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_errors_total: %v", err)
		}

		m.SearchDurationSeconds, err = meter.Float64Histogram(
			"search_duration_seconds",
			metric.WithDescription("Duration of hotel searches in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_duration_seconds: %v", err)
		}

		m.ItinerariesSavedTotal, err = meter.Int64Counter(
			"itineraries_saved_total",
			metric.WithDescription("Total number of itineraries persisted"),
			metric.WithUnit("{itinerary}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itineraries_saved_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m // Assign to global variable
	})
}

// Get returns the globally initialized AppMetrics instance, or nil when
// InitAppMetrics has not been called (unit tests run without it).
func Get() *AppMetrics {
	return appMetrics
}
