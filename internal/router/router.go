package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/tourgent/go-trip-planner/internal/api/hotels"
	"github.com/tourgent/go-trip-planner/internal/api/itinerary"
	"github.com/tourgent/go-trip-planner/internal/api/planner"
)

// Config contains dependencies needed for the router setup
type Config struct {
	HotelHandler     *hotels.HotelHandler
	ItineraryHandler *itinerary.ItineraryHandler
	PlannerHandler   *planner.PlannerHandler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/hotels", func(r chi.Router) {
			r.Post("/search", cfg.HotelHandler.SearchHotels)
			r.Post("/analyze", cfg.HotelHandler.AnalyzeHotels)
			r.Post("/details", cfg.HotelHandler.GetDetailsAndPrices)
		})

		r.Route("/itineraries", func(r chi.Router) {
			r.Post("/", cfg.ItineraryHandler.SaveItinerary)
			r.Get("/", cfg.ItineraryHandler.ListItineraries)
			r.Get("/{itineraryID}", cfg.ItineraryHandler.GetItinerary)
		})

		r.Post("/planner/itinerary", cfg.PlannerHandler.PlanItinerary)
	})

	return r
}
