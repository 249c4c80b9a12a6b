// Package fixture binds a vendor profile to a connection. A Session applies datasets
// before a test and snapshots or compares live tables after it.
package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/diff"
	"github.com/gaborage/dbfixture/internal/dml"
	"github.com/gaborage/dbfixture/logger"
	"github.com/gaborage/dbfixture/metadata"
	"github.com/gaborage/dbfixture/operation"
	"github.com/gaborage/dbfixture/profile"
)

var ErrClosed = errors.New("session is closed")

// Session is a profile bound to a connection. It is safe for sequential use by one test.
type Session struct {
	db            types.Interface
	profile       profile.Profile
	exec          *operation.Executor
	dml           *dml.Builder
	log           logger.Logger
	setup         operation.Kind
	caseSensitive bool
	ownsDB        bool
	closed        bool
}

type options struct {
	log           logger.Logger
	execOpts      []operation.Option
	setup         operation.Kind
	caseSensitive bool
	ownsDB        bool
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the session logger. It is passed on to the executor.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithExecutorOptions forwards options to the session's operation executor.
func WithExecutorOptions(opts ...operation.Option) Option {
	return func(o *options) {
		o.execOpts = append(o.execOpts, opts...)
	}
}

// WithSetupOperation sets the operation used by Setup. The default is CLEAN_INSERT.
func WithSetupOperation(k operation.Kind) Option {
	return func(o *options) {
		o.setup = k
	}
}

// WithCaseSensitive makes snapshots match table and column names exactly.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *options) {
		o.caseSensitive = caseSensitive
	}
}

// WithOwnedConnection makes Close close db.
func WithOwnedConnection() Option {
	return func(o *options) {
		o.ownsDB = true
	}
}

// NewSession creates a session applying datasets to db with profile p.
func NewSession(db types.Interface, p profile.Profile, opts ...Option) (*Session, error) {
	if db == nil {
		return nil, errors.New("fixture: connection is required")
	}
	o := options{log: logger.Nop(), setup: operation.CleanInsert}
	for _, opt := range opts {
		opt(&o)
	}
	if db.DatabaseType() != p.Vendor {
		return nil, fmt.Errorf("%w: connection is %s, profile is for %s", profile.ErrInvalidProfile, db.DatabaseType(), p.Vendor)
	}

	execOpts := append([]operation.Option{operation.WithLogger(o.log)}, o.execOpts...)
	exec, err := operation.New(p, execOpts...)
	if err != nil {
		return nil, err
	}

	return &Session{
		db:            db,
		profile:       p,
		exec:          exec,
		dml:           dml.New(p.Vendor, p.Metadata.QuoteIdentifier),
		log:           o.log,
		setup:         o.setup,
		caseSensitive: o.caseSensitive,
		ownsDB:        o.ownsDB,
	}, nil
}

// DB returns the session's connection.
func (s *Session) DB() types.Interface { return s.db }

// Profile returns the session's profile.
func (s *Session) Profile() profile.Profile { return s.profile }

// Apply applies ds with the given operation.
func (s *Session) Apply(ctx context.Context, kind operation.Kind, ds *dataset.Dataset) (*operation.Result, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return s.exec.Apply(ctx, kind, ds, s.db)
}

// Setup applies ds with the session's setup operation.
func (s *Session) Setup(ctx context.Context, ds *dataset.Dataset) (*operation.Result, error) {
	return s.Apply(ctx, s.setup, ds)
}

// CleanInsert empties the dataset's tables and inserts its rows.
func (s *Session) CleanInsert(ctx context.Context, ds *dataset.Dataset) (*operation.Result, error) {
	return s.Apply(ctx, operation.CleanInsert, ds)
}

// Compare snapshots the tables named in expected and compares them with it.
func (s *Session) Compare(ctx context.Context, expected *dataset.Dataset, opts ...diff.Option) (*diff.Diff, error) {
	actual, err := s.Snapshot(ctx, expected.TableNames()...)
	if err != nil {
		return nil, err
	}
	opts = append([]diff.Option{diff.WithLogger(s.log)}, opts...)
	return diff.Compare(expected, actual, opts...), nil
}

// Assert compares like Compare and returns a *diff.AssertionFailure listing every
// difference, or nil when the live tables match.
func (s *Session) Assert(ctx context.Context, expected *dataset.Dataset, opts ...diff.Option) error {
	d, err := s.Compare(ctx, expected, opts...)
	if err != nil {
		return err
	}
	return d.Err()
}

// OrderByDependencies returns ds with parent tables ahead of the tables that reference
// them, using the foreign keys reported by the profile's metadata handler.
func (s *Session) OrderByDependencies(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	if s.closed {
		return nil, ErrClosed
	}
	resolver, ok := s.profile.Metadata.(metadata.DependencyResolver)
	if !ok {
		return nil, fmt.Errorf("metadata handler for %s does not report foreign keys", s.profile.Vendor)
	}

	deps := make(map[string][]string, ds.Len())
	for _, name := range ds.TableNames() {
		fks, err := resolver.ForeignKeys(ctx, s.db, name)
		if err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", name, err)
		}
		for _, fk := range fks {
			deps[name] = append(deps[name], parentName(ds, fk.RefTable))
		}
	}
	return dataset.OrderByDependencies(ds, deps)
}

// parentName maps a referenced catalog table to its dataset name, dropping the
// schema when only the bare name is in ds.
func parentName(ds *dataset.Dataset, ref string) string {
	if ds.HasTable(ref) {
		return ref
	}
	_, bare := metadata.SplitQualified(ref)
	return bare
}

// Close releases the session. The connection is closed only when the session owns it.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
