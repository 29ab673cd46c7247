// Package graph connects to a Bolt graph database (Neo4j or Memgraph) holding
// the family tree.
package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Driver is the query surface the relationship store needs.
type Driver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Neo4jDriver runs every query as an auto-committed managed transaction.
type Neo4jDriver struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// Connect dials the server and verifies connectivity. It returns nil when no
// URI is configured.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Neo4jDriver, error) {
	if cfg.URI == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}
	logger.Info("connected to graph database", "uri", cfg.URI)
	return &Neo4jDriver{driver: driver, database: cfg.Database, logger: logger}, nil
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{}
	if d.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, fmt.Errorf("execute graph query: %w", err)
	}
	return result, nil
}

// BuildIndices creates the lookup index on person ids. Failures are logged
// because the index may already exist under another name.
func (d *Neo4jDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX person_id IF NOT EXISTS FOR (p:Person) ON (p.id)",
	}
	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			d.logger.Warn("failed to create graph index", "query", q, "error", err)
		}
	}
	return nil
}

func (d *Neo4jDriver) Health(ctx context.Context) error {
	return d.driver.VerifyConnectivity(ctx)
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}
