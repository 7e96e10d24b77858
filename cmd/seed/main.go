package main

import (
	"context"
	"flag"
	"path/filepath"

	"go.uber.org/zap"

	"pedigraph/internal/config"
	"pedigraph/internal/domain"
	"pedigraph/internal/export"
	"pedigraph/internal/graphstore"
	"pedigraph/internal/projection"
	"pedigraph/pkg/logger"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	env := flag.String("env", "development", "environment (development or production)")
	force := flag.Bool("force", false, "seed even if the marker file exists")
	flag.Parse()

	if err := logger.Init(*env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	marker := graphstore.NewMarker(cfg.Pipeline.SeedMarkerPath)
	if *force {
		if err := marker.Clear(); err != nil {
			log.Fatal("failed to clear seed marker", zap.Error(err))
		}
	}
	seeded, err := marker.Exists()
	if err != nil {
		log.Fatal("failed to check seed marker", zap.Error(err))
	}
	if seeded {
		log.Info("seed marker present, nothing to do",
			zap.String("marker", cfg.Pipeline.SeedMarkerPath))
		return
	}

	model, err := loadModel(cfg.Pipeline.OutDir)
	if err != nil {
		log.Fatal("failed to load exported model", zap.Error(err))
	}

	ctx := context.Background()
	client, err := graphstore.NewClient(ctx, cfg.Graph, log)
	if err != nil {
		log.Fatal("failed to connect to graph database", zap.Error(err))
	}
	defer client.Close(ctx)

	seeder := graphstore.NewSeeder(client, cfg.Pipeline.BatchSize, log)
	if err := seeder.Seed(ctx, model); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	if err := marker.Write(); err != nil {
		log.Fatal("failed to write seed marker", zap.Error(err))
	}
	log.Info("graph seeded", zap.String("marker", cfg.Pipeline.SeedMarkerPath))
}

func loadModel(outDir string) (projection.Model, error) {
	specs := []domain.DimensionSpec{
		domain.BreedSpec,
		domain.ColorSpec,
		domain.CountrySpec,
		domain.CatterySpec,
		domain.SourceDBSpec,
	}

	tables := make([]domain.DimensionTable, 0, len(specs))
	for _, spec := range specs {
		table, err := export.ReadDimension(filepath.Join(outDir, spec.Name+".csv"), spec)
		if err != nil {
			return projection.Model{}, err
		}
		tables = append(tables, table)
	}

	cats, err := export.ReadCats(filepath.Join(outDir, "cats.csv"))
	if err != nil {
		return projection.Model{}, err
	}

	return projection.Project(tables, cats), nil
}
