package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"restaurant-picker-api/internal/config"
	"restaurant-picker-api/internal/logger"
	"restaurant-picker-api/internal/models"
	"restaurant-picker-api/internal/repository"
	"restaurant-picker-api/internal/seed"
	"restaurant-picker-api/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "CSV file to import instead of generating sample data")
	count := flag.Int("count", 100, "Number of sample restaurants to generate")
	seedValue := flag.Uint64("seed", 0, "Random seed for sample data (0 picks a random seed)")
	configPath := flag.String("config", "configs", "Directory holding app.env")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(cfg.LogLevel, "console", os.Stderr)

	restaurants, err := loadRestaurants(*file, *count, *seedValue)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load restaurants")
	}
	log.Info().Int("records", len(restaurants)).Msg("restaurants ready")

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("cannot open store")
	}
	defer store.Close()

	svc := service.NewRestaurantService(store)

	before, err := svc.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot count restaurants")
	}

	inserted, err := svc.Import(ctx, restaurants)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	total, err := svc.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot count restaurants")
	}

	log.Info().
		Int("before", before).
		Int("inserted", inserted).
		Int("skipped", len(restaurants)-inserted).
		Int("total", total).
		Msg("seeding complete")
}

func loadRestaurants(file string, count int, seedValue uint64) ([]models.Restaurant, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		restaurants, err := seed.ParseCSV(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		return restaurants, nil
	}

	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	if seedValue == 0 {
		seedValue = rand.Uint64()
	}
	return seed.Generate(rand.New(rand.NewPCG(seedValue, seedValue)), count), nil
}
