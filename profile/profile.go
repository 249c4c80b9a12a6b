// Package profile bundles the per-vendor collaborators a session needs: the type
// registry and the metadata handler. Profiles are plain values passed into session
// construction.
package profile

import (
	"errors"
	"fmt"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/datatype"
	"github.com/gaborage/dbfixture/logger"
	"github.com/gaborage/dbfixture/metadata"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the vendor configuration of a session.
type Profile struct {
	Vendor   string
	Types    *datatype.Registry
	Metadata metadata.Handler
}

// Validate checks that the profile is complete and consistent.
func (p Profile) Validate() error {
	switch {
	case p.Vendor == "":
		return fmt.Errorf("%w: vendor is required", ErrInvalidProfile)
	case p.Types == nil:
		return fmt.Errorf("%w: type registry is required", ErrInvalidProfile)
	case p.Metadata == nil:
		return fmt.Errorf("%w: metadata handler is required", ErrInvalidProfile)
	case p.Metadata.Vendor() != p.Vendor:
		return fmt.Errorf("%w: metadata handler is for %s, profile is for %s", ErrInvalidProfile, p.Metadata.Vendor(), p.Vendor)
	}
	return nil
}

type options struct {
	log           logger.Logger
	caseSensitive bool
	columnCache   bool
	overrides     []datatype.Overrides
}

// Option customizes a built-in profile.
type Option func(*options)

// WithLogger sets the logger used by the type registry for fallback warnings.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithCaseSensitive disables case folding of unquoted identifiers.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *options) {
		o.caseSensitive = caseSensitive
	}
}

// WithColumnCache enables per-table caching of column metadata.
func WithColumnCache() Option {
	return func(o *options) {
		o.columnCache = true
	}
}

// WithOverrides adds type bindings on top of the vendor's built-in ones.
func WithOverrides(ov datatype.Overrides) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, ov)
	}
}

// For builds the built-in profile for vendor. schema selects the default schema
// (owner for Oracle); empty uses the session's current schema.
func For(vendor, schema string, opts ...Option) (Profile, error) {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	var mopts []metadata.Option
	mopts = append(mopts, metadata.WithCaseSensitive(o.caseSensitive))
	if o.columnCache {
		mopts = append(mopts, metadata.WithColumnCache())
	}
	handler, err := metadata.New(vendor, schema, mopts...)
	if err != nil {
		return Profile{}, err
	}

	ropts := []datatype.RegistryOption{datatype.WithLogger(o.log)}
	if ov, ok := datatype.VendorOverrides(vendor); ok {
		ropts = append(ropts, datatype.WithOverrides(ov))
	}
	for _, ov := range o.overrides {
		ropts = append(ropts, datatype.WithOverrides(ov))
	}

	return Profile{
		Vendor:   vendor,
		Types:    datatype.NewRegistry(vendor, ropts...),
		Metadata: handler,
	}, nil
}

func mustFor(vendor, schema string, opts []Option) Profile {
	p, err := For(vendor, schema, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// PostgreSQL returns the PostgreSQL profile.
func PostgreSQL(schema string, opts ...Option) Profile {
	return mustFor(types.PostgreSQL, schema, opts)
}

// Oracle returns the Oracle profile for the given owner.
func Oracle(owner string, opts ...Option) Profile {
	return mustFor(types.Oracle, owner, opts)
}

// MySQL returns the MySQL profile.
func MySQL(schema string, opts ...Option) Profile {
	return mustFor(types.MySQL, schema, opts)
}

// SQLServer returns the SQL Server profile.
func SQLServer(schema string, opts ...Option) Profile {
	return mustFor(types.SQLServer, schema, opts)
}

// SQLite returns the SQLite profile.
func SQLite(opts ...Option) Profile {
	return mustFor(types.SQLite, "", opts)
}
