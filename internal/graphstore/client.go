package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Config holds graph database connection settings.
type Config struct {
	URI      string
	User     string
	Password string
	Database string
}

// DefaultConfig returns a config pointing at a local instance.
func DefaultConfig() Config {
	return Config{
		URI:      "bolt://localhost:7687",
		User:     "neo4j",
		Password: "password",
		Database: "",
	}
}

// Client wraps the graph database driver.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *zap.Logger
}

// NewClient creates a driver and verifies connectivity before returning.
func NewClient(ctx context.Context, config Config, log *zap.Logger) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		config.URI,
		neo4j.BasicAuth(config.User, config.Password, ""),
		func(cfg *neo4j.Config) {
			cfg.MaxConnectionPoolSize = 50
			cfg.SocketConnectTimeout = 10 * time.Second
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	log.Info("connected to graph database", zap.String("uri", config.URI))

	return &Client{
		Driver:   driver,
		Database: config.Database,
		log:      log,
	}, nil
}

// Close releases the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}

// session opens a write session against the configured database.
func (c *Client) session(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
}
