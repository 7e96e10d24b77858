package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"pedigraph/internal/config"
	"pedigraph/internal/db"
	"pedigraph/internal/export"
	"pedigraph/internal/ingestion"
	"pedigraph/internal/pipeline"
	"pedigraph/pkg/logger"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	dataDir := flag.String("data", "", "override source data directory")
	outDir := flag.String("out", "", "override export directory")
	env := flag.String("env", "development", "environment (development or production)")
	skipDB := flag.Bool("skip-db", false, "export CSVs only, skip the relational load")
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
	if *dataDir != "" {
		cfg.Pipeline.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Pipeline.OutDir = *outDir
	}

	ctx := context.Background()

	var store pipeline.ModelStore
	if !*skipDB {
		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer conn.Close()

		if err := db.RunMigrations(cfg.Database, "./migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}

		store = db.NewLoader(conn, log)
	}

	p := pipeline.New(ingestion.NewService(), export.NewService(cfg.Pipeline.OutDir), store, log)

	result, err := p.Run(ctx, cfg.Pipeline.DataDir)
	if err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}

	log.Info("pipeline finished",
		zap.Int("dimensions", len(result.Tables)),
		zap.Int("cats", len(result.Cats)),
		zap.Strings("files", result.Files))
}
