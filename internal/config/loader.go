package config

import (
	"fmt"

	"github.com/spf13/viper"

	"pedigraph/internal/db"
	"pedigraph/internal/graphstore"
)

// Pipeline holds the batch-run settings shared by the CLI entrypoints.
type Pipeline struct {
	DataDir        string
	OutDir         string
	SeedMarkerPath string
	BatchSize      int
}

// Config aggregates every section of config.yaml.
type Config struct {
	Database db.Config
	Graph    graphstore.Config
	Pipeline Pipeline
}

// DefaultPipeline returns the pipeline defaults used when config.yaml is absent.
func DefaultPipeline() Pipeline {
	return Pipeline{
		DataDir:        "./data/initial",
		OutDir:         "./data/final",
		SeedMarkerPath: "./data/final/.seeded",
		BatchSize:      25000,
	}
}

// Load reads config.yaml from configPath with environment overrides.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Graph:    graphstore.DefaultConfig(),
		Pipeline: DefaultPipeline(),
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("PEDIGRAPH")

	// Map nested keys to flat env vars, e.g. PEDIGRAPH_DATABASE_HOST.
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("graph.uri")
	v.BindEnv("graph.user")
	v.BindEnv("graph.password")
	v.BindEnv("graph.database")
	v.BindEnv("pipeline.data_dir")
	v.BindEnv("pipeline.out_dir")
	v.BindEnv("pipeline.seed_marker_path")
	v.BindEnv("pipeline.batch_size")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	if v.IsSet("graph.uri") {
		cfg.Graph.URI = v.GetString("graph.uri")
	}
	if v.IsSet("graph.user") {
		cfg.Graph.User = v.GetString("graph.user")
	}
	if v.IsSet("graph.password") {
		cfg.Graph.Password = v.GetString("graph.password")
	}
	if v.IsSet("graph.database") {
		cfg.Graph.Database = v.GetString("graph.database")
	}

	if v.IsSet("pipeline.data_dir") {
		cfg.Pipeline.DataDir = v.GetString("pipeline.data_dir")
	}
	if v.IsSet("pipeline.out_dir") {
		cfg.Pipeline.OutDir = v.GetString("pipeline.out_dir")
	}
	if v.IsSet("pipeline.seed_marker_path") {
		cfg.Pipeline.SeedMarkerPath = v.GetString("pipeline.seed_marker_path")
	}
	if v.IsSet("pipeline.batch_size") {
		if size := v.GetInt("pipeline.batch_size"); size > 0 {
			cfg.Pipeline.BatchSize = size
		}
	}

	return cfg, nil
}
