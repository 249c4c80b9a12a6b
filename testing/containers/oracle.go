//go:build integration

package containers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/types"
)

// OracleContainerConfig holds configuration for Oracle test container
type OracleContainerConfig struct {
	// ImageTag specifies the Oracle version (default: "23-slim")
	ImageTag string
	// Password for SYSTEM, SYS, and APP users (default: "testpass")
	Password string
	// Database name (default: "FREE" for Oracle Free)
	Database string
	// AppUser is the application user to create (default: "testuser")
	AppUser string
	// StartupTimeout for container initialization (default: 120 seconds, Oracle takes longer)
	StartupTimeout time.Duration
}

// DefaultOracleConfig returns the configuration used when none is given.
func DefaultOracleConfig() *OracleContainerConfig {
	return &OracleContainerConfig{
		ImageTag:       "23-slim",
		Password:       "fixture",
		Database:       "FREEPDB1", // Oracle Free default PDB name
		AppUser:        "fixture",
		StartupTimeout: 120 * time.Second,
	}
}

// OracleContainer wraps testcontainers Oracle container with helper methods
type OracleContainer struct {
	container testcontainers.Container
	connStr   string
	host      string
	port      int
	database  string
	username  string
	password  string
}

// StartOracleContainer starts a gvenzl/oracle-free container. A nil cfg uses
// DefaultOracleConfig. The test is skipped when Docker is unavailable.
func StartOracleContainer(ctx context.Context, t TB, cfg *OracleContainerConfig) (*OracleContainer, error) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultOracleConfig()
	}
	skipWithoutDocker(ctx, t)

	// Oracle container environment variables
	env := map[string]string{
		"ORACLE_PASSWORD": cfg.Password,
		"APP_USER":        cfg.AppUser,
		"APP_USER_PASSWORD": cfg.Password,
	}

	// The ready log precedes the listener, so wait for both.
	req := testcontainers.ContainerRequest{
		Image:        fmt.Sprintf("gvenzl/oracle-free:%s", cfg.ImageTag),
		ExposedPorts: []string{"1521/tcp"},
		Env:          env,
		WaitingFor: wait.ForAll(
			wait.ForLog("DATABASE IS READY TO USE!"),
			wait.ForListeningPort("1521/tcp"),
		).WithStartupTimeout(cfg.StartupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Oracle container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get Oracle container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "1521")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get Oracle container port: %w", err)
	}

	port := mappedPort.Int()

	connStr := fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		cfg.AppUser, cfg.Password, host, port, cfg.Database)

	t.Logf("Oracle container started at %s:%d (service: %s, user: %s)",
		host, port, cfg.Database, cfg.AppUser)

	return &OracleContainer{
		container: container,
		connStr:   connStr,
		host:      host,
		port:      port,
		database:  cfg.Database,
		username:  cfg.AppUser,
		password:  cfg.Password,
	}, nil
}

// ConnectionString returns the go-ora oracle:// URL.
func (o *OracleContainer) ConnectionString() string {
	return o.connStr
}

// DatabaseConfig returns a database configuration pointing at the container.
func (o *OracleContainer) DatabaseConfig() *config.DatabaseConfig {
	cfg := &config.DatabaseConfig{
		Type:     types.Oracle,
		Host:     o.host,
		Port:     o.port,
		Username: o.username,
		Password: o.password,
		Schema:   strings.ToUpper(o.username),
	}
	cfg.Oracle.ServiceName = o.database
	return cfg
}

// Terminate stops and removes the Oracle container
func (o *OracleContainer) Terminate(ctx context.Context) error {
	if o.container == nil {
		return nil
	}
	return o.container.Terminate(ctx)
}

// MustStartOracleContainer is StartOracleContainer that fails the test on error.
// The container is terminated when the test finishes.
func MustStartOracleContainer(ctx context.Context, t TB, cfg *OracleContainerConfig) *OracleContainer {
	t.Helper()

	c, err := StartOracleContainer(ctx, t, cfg)
	if err != nil {
		t.Fatalf("Failed to start Oracle container: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate Oracle container: %v", err)
		}
	})
	return c
}
