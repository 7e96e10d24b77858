package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"pedigraph/internal/ancestry"
	"pedigraph/internal/benchmark"
	"pedigraph/internal/config"
	"pedigraph/internal/db"
	"pedigraph/internal/graphstore"
	"pedigraph/pkg/logger"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	env := flag.String("env", "development", "environment (development or production)")
	rootID := flag.Int64("cat", 2, "root cat id to traverse from")
	depth := flag.Int("depth", 0, "run a single case at this depth instead of the full tier set")
	iterations := flag.Int("iterations", 10, "iterations for the single-case run")
	resultsDir := flag.String("results", "./output", "base directory for result files")
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

	ctx := context.Background()

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	client, err := graphstore.NewClient(ctx, cfg.Graph, log)
	if err != nil {
		log.Fatal("failed to connect to graph database", zap.Error(err))
	}
	defer client.Close(ctx)

	postgres := benchmark.Subject{Name: "postgres", Traverser: ancestry.NewPostgresTraverser(conn)}
	neo := benchmark.Subject{Name: "neo4j", Traverser: ancestry.NewNeo4jTraverser(client)}

	cases := benchmark.DefaultCases(*rootID)
	if *depth > 0 {
		cases = []benchmark.Case{{RootID: *rootID, Depth: *depth, Iterations: *iterations}}
	}

	resLogger, err := benchmark.NewResultsLogger(*resultsDir)
	if err != nil {
		log.Fatal("failed to create results directory", zap.Error(err))
	}
	log.Info("benchmark starting",
		zap.Int("cases", len(cases)),
		zap.String("results", resLogger.Dir()))

	runner := benchmark.NewRunner(log)
	for _, c := range cases {
		comparison, err := runner.Compare(ctx, postgres, neo, c)
		if err != nil {
			log.Fatal("benchmark case failed",
				zap.Int("depth", c.Depth), zap.Error(err))
		}
		if err := resLogger.Save(comparison); err != nil {
			log.Fatal("failed to save comparison", zap.Error(err))
		}
	}

	if err := resLogger.SaveSummary(); err != nil {
		log.Fatal("failed to save summary", zap.Error(err))
	}
	log.Info("benchmark finished", zap.String("results", resLogger.Dir()))
}
