package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	appLogger "github.com/FACorreiaa/go-trip-planner/app/logger"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/catalog"
	"github.com/FACorreiaa/go-trip-planner/internal/api/landmark"
)

// Usage: go run ./scripts -kind landmarks -file data/landmarks.csv
func main() {
	kind := flag.String("kind", string(catalog.ImportLandmarks), "landmarks, japan_restaurants, thailand_activities or uk_museums")
	file := flag.String("file", "", "CSV file with a header row")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := appLogger.New(os.Stdout, cfg.IsDevelopment())

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create database config: %v", err)
	}
	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer f.Close()

	landmarkService := landmark.NewService(landmark.NewRepository(pool, logger), logger)
	importer := catalog.NewImporter(catalog.NewRepository(pool, logger), landmarkService, logger)

	n, err := importer.Import(context.Background(), catalog.ImportKind(*kind), f)
	if err != nil {
		logger.Error("Import failed", slog.Int("imported", n), slog.Any("error", err))
		return
	}
	logger.Info("Import complete", slog.String("file", *file), slog.Int("rows", n))
}
