package fixture

import (
	"fmt"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database"
	"github.com/gaborage/dbfixture/logger"
	"github.com/gaborage/dbfixture/operation"
	"github.com/gaborage/dbfixture/profile"
)

// newConnection is swapped in tests.
var newConnection = database.NewConnection

// NewSessionFromConfig opens the configured database with the vendor's built-in
// profile. The session owns the connection and Close releases it.
func NewSessionFromConfig(cfg *config.Config, log logger.Logger) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	setup, err := operation.ParseKind(cfg.Fixture.Operation)
	if err != nil {
		return nil, fmt.Errorf("fixture.operation: %w", err)
	}

	popts := []profile.Option{
		profile.WithLogger(log),
		profile.WithCaseSensitive(cfg.Fixture.CaseSensitive),
	}
	if cfg.Fixture.ColumnCache {
		popts = append(popts, profile.WithColumnCache())
	}
	p, err := profile.For(cfg.Database.Type, cfg.Database.Schema, popts...)
	if err != nil {
		return nil, err
	}

	db, err := newConnection(&cfg.Database, log)
	if err != nil {
		return nil, err
	}

	s, err := NewSession(db, p,
		WithLogger(log),
		WithSetupOperation(setup),
		WithCaseSensitive(cfg.Fixture.CaseSensitive),
		WithOwnedConnection(),
		WithExecutorOptions(
			operation.WithBatchSize(cfg.Fixture.BatchSize),
			operation.WithTransaction(cfg.Fixture.Transactional),
			operation.WithIgnoreUnknownColumns(cfg.Fixture.IgnoreUnknownColumns),
		),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Open loads configuration and opens a session from it.
func Open(log logger.Logger, opts ...config.LoadOption) (*Session, error) {
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	return NewSessionFromConfig(cfg, log)
}
