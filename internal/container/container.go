package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/catalog"
	"github.com/FACorreiaa/go-trip-planner/internal/api/distance"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/landmark"
	"github.com/FACorreiaa/go-trip-planner/internal/api/weather"
	"github.com/FACorreiaa/go-trip-planner/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	ItineraryHandler *itinerary.HandlerImpl
	CatalogHandler   *catalog.HandlerImpl
	LandmarkHandler  *landmark.HandlerImpl
	WeatherHandler   *weather.HandlerImpl
	DistanceHandler  *distance.HandlerImpl
	ChatHandler      *generativeAI.ChatHandler
}

// NewContainer initializes and returns a new Container with all dependencies.
// metrics.InitAppMetrics must have been called.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*Container, error) {
	m := metrics.Get()

	ai, err := generativeAI.NewAIClient(ctx, cfg.GenAI, logger)
	if err != nil {
		return nil, fmt.Errorf("creating AI client: %w", err)
	}

	landmarkRepo := landmark.NewRepository(pool, logger)
	landmarkService := landmark.NewService(landmarkRepo, logger)

	catalogRepo := catalog.NewRepository(pool, logger)
	catalogService := catalog.NewService(catalogRepo, landmarkService, logger)

	weatherClient := weather.NewClient(cfg.Services.Weather, m, logger)
	distanceClient := distance.NewClient(cfg.Services.Distance, m, logger)

	itineraryRepo := itinerary.NewRepository(pool, m, logger)
	planner := itinerary.NewPlanner(ai, m, logger)
	itineraryService := itinerary.NewService(itineraryRepo, planner, landmarkService, catalogService,
		weatherClient, ai.Model(), logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		ItineraryHandler: itinerary.NewHandler(itineraryService, logger),
		CatalogHandler:   catalog.NewHandler(catalogService, logger),
		LandmarkHandler:  landmark.NewHandler(landmarkService, logger),
		WeatherHandler:   weather.NewHandler(weatherClient, logger),
		DistanceHandler:  distance.NewHandler(distanceClient),
		ChatHandler:      generativeAI.NewChatHandler(ai, logger),
	}, nil
}

// RouterConfig maps the container onto the router's dependencies.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		ItineraryHandler:  c.ItineraryHandler,
		CatalogHandler:    c.CatalogHandler,
		LandmarkHandler:   c.LandmarkHandler,
		WeatherHandler:    c.WeatherHandler,
		DistanceHandler:   c.DistanceHandler,
		ChatHandler:       c.ChatHandler,
		JWTSecret:         c.Config.Auth.JWTSecret,
		AdminRole:         c.Config.Auth.AdminRole,
		AllowedOrigins:    c.Config.CORS.AllowedOrigins,
		GenerateRateLimit: c.Config.Server.GenerateRateLimit,
		Logger:            c.Logger,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
