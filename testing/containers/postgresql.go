//go:build integration

package containers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/types"
)

// PostgreSQLContainerConfig holds configuration for PostgreSQL test container
type PostgreSQLContainerConfig struct {
	// ImageTag specifies the PostgreSQL version (default: "17-alpine")
	ImageTag string
	Username string
	Password string
	Database string
	// StartupTimeout for container initialization (default: 60 seconds)
	StartupTimeout time.Duration
}

// DefaultPostgreSQLConfig returns the configuration used when none is given.
func DefaultPostgreSQLConfig() *PostgreSQLContainerConfig {
	return &PostgreSQLContainerConfig{
		ImageTag:       "17-alpine",
		Username:       "fixture",
		Password:       "fixture",
		Database:       "fixture",
		StartupTimeout: 60 * time.Second,
	}
}

// PostgreSQLContainer is a running PostgreSQL test container.
type PostgreSQLContainer struct {
	container *postgres.PostgresContainer
	cfg       *PostgreSQLContainerConfig
	connStr   string
}

// StartPostgreSQLContainer starts a PostgreSQL container. A nil cfg uses
// DefaultPostgreSQLConfig. The test is skipped when Docker is unavailable.
func StartPostgreSQLContainer(ctx context.Context, t TB, cfg *PostgreSQLContainerConfig) (*PostgreSQLContainer, error) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultPostgreSQLConfig()
	}
	skipWithoutDocker(ctx, t)

	pgContainer, err := postgres.Run(ctx,
		fmt.Sprintf("postgres:%s", cfg.ImageTag),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2). // Postgres restarts after initial setup
				WithStartupTimeout(cfg.StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get PostgreSQL connection string: %w", err)
	}

	t.Logf("PostgreSQL container started at %s", maskConnectionString(connStr))

	return &PostgreSQLContainer{container: pgContainer, cfg: cfg, connStr: connStr}, nil
}

// MustStartPostgreSQLContainer is StartPostgreSQLContainer that fails the test on error.
// The container is terminated when the test finishes.
func MustStartPostgreSQLContainer(ctx context.Context, t TB, cfg *PostgreSQLContainerConfig) *PostgreSQLContainer {
	t.Helper()

	c, err := StartPostgreSQLContainer(ctx, t, cfg)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate PostgreSQL container: %v", err)
		}
	})
	return c
}

// ConnectionString returns the PostgreSQL connection string
func (p *PostgreSQLContainer) ConnectionString() string {
	return p.connStr
}

// DatabaseConfig returns a database configuration pointing at the container.
func (p *PostgreSQLContainer) DatabaseConfig() *config.DatabaseConfig {
	cfg := &config.DatabaseConfig{
		Type:             types.PostgreSQL,
		Database:         p.cfg.Database,
		Username:         p.cfg.Username,
		Password:         p.cfg.Password,
		ConnectionString: p.connStr,
	}
	cfg.Pool.Max.Connections = 4
	return cfg
}

// Terminate stops and removes the PostgreSQL container
func (p *PostgreSQLContainer) Terminate(ctx context.Context) error {
	if p.container == nil {
		return nil
	}
	return p.container.Terminate(ctx)
}

// maskConnectionString hides the password of a postgres:// URL.
func maskConnectionString(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return "postgres://****:****@<host>:<port>/<database>"
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	return u.String()
}
