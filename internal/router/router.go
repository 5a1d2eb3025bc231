package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/go-trip-planner/app/middleware"
	"github.com/FACorreiaa/go-trip-planner/internal/api/catalog"
	"github.com/FACorreiaa/go-trip-planner/internal/api/distance"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/landmark"
	"github.com/FACorreiaa/go-trip-planner/internal/api/weather"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.HandlerImpl
	CatalogHandler   *catalog.HandlerImpl
	LandmarkHandler  *landmark.HandlerImpl
	WeatherHandler   *weather.HandlerImpl
	DistanceHandler  *distance.HandlerImpl
	ChatHandler      *generativeAI.ChatHandler

	JWTSecret      string
	AdminRole      string
	AllowedOrigins []string
	Logger         *slog.Logger

	// GenerateRateLimit is per client IP per minute; zero means 10.
	GenerateRateLimit int
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	adminRole := cfg.AdminRole
	if adminRole == "" {
		adminRole = "admin"
	}

	generateLimit := cfg.GenerateRateLimit
	if generateLimit <= 0 {
		generateLimit = 10
	}
	limitGeneration := httprate.LimitByIP(generateLimit, time.Minute)

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog
		r.Get("/countries", cfg.CatalogHandler.ListCountries)
		r.Get("/regions", cfg.CatalogHandler.ListRegions)
		r.Get("/checklist", cfg.CatalogHandler.GetChecklist)
		r.Get("/travel/overview", cfg.CatalogHandler.GetTravelOverview)

		r.Route("/landmarks", func(r chi.Router) {
			r.Get("/", cfg.LandmarkHandler.ListLandmarks)
			r.Get("/{landmarkID}", cfg.LandmarkHandler.GetLandmark)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.Authenticate(cfg.Logger, cfg.JWTSecret))
				r.Use(appMiddleware.RequireRole(cfg.Logger, adminRole))
				r.Post("/", cfg.LandmarkHandler.CreateLandmark)
				r.Put("/{landmarkID}", cfg.LandmarkHandler.UpdateLandmark)
				r.Delete("/{landmarkID}", cfg.LandmarkHandler.DeleteLandmark)
			})
		})

		r.Route("/itineraries", func(r chi.Router) {
			r.With(limitGeneration).Post("/generate", cfg.ItineraryHandler.GenerateItinerary)
			r.Get("/", cfg.ItineraryHandler.ListItineraries)
			r.Get("/{itineraryID}", cfg.ItineraryHandler.GetItinerary)
			r.Get("/{itineraryID}/report", cfg.ItineraryHandler.GetItineraryReport)
			r.Get("/{itineraryID}/csv", cfg.ItineraryHandler.DownloadItineraryCSV)
		})

		r.Get("/weather/check", cfg.WeatherHandler.CheckWeather)
		r.Get("/weather/forecast", cfg.WeatherHandler.GetForecast)
		r.Get("/distance", cfg.DistanceHandler.GetDistance)
		r.With(limitGeneration).Post("/gemini/chat", cfg.ChatHandler.Chat)
	})

	return r
}
