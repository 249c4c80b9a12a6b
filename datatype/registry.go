package datatype

import (
	"sync"

	"github.com/gaborage/dbfixture/logger"
)

// Overrides is a data-only binding table contributed by a vendor. Names are matched
// case-insensitively, first verbatim ("TINYINT(1)") and then without arguments.
type Overrides struct {
	ByCode map[int]DataType
	ByName map[string]DataType
}

// Registry maps (SQL type code, type name) to a DataType for one vendor.
// A Registry is immutable after construction and safe for concurrent reads.
type Registry struct {
	vendor string
	byCode map[int]DataType
	byName map[string]DataType
	parent *Registry
	log    logger.Logger

	// warned records fallbacks already logged, keyed by type name.
	warned sync.Map
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithOverrides installs vendor bindings. Later overrides win over earlier ones.
func WithOverrides(o Overrides) RegistryOption {
	return func(r *Registry) {
		for code, dt := range o.ByCode {
			r.byCode[code] = dt
		}
		for name, dt := range o.ByName {
			r.byName[normalizeName(name)] = dt
		}
	}
}

// WithLogger sets the logger used to report generic fallbacks.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the vendor-agnostic registry every vendor registry falls back to.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = &Registry{
			vendor: "default",
			byCode: defaultCodes(),
			byName: defaultNames(),
			log:    logger.Nop(),
		}
	})
	return defaultRegistry
}

// NewRegistry builds a vendor registry layered over Default.
func NewRegistry(vendor string, opts ...RegistryOption) *Registry {
	r := &Registry{
		vendor: vendor,
		byCode: make(map[int]DataType),
		byName: make(map[string]DataType),
		parent: Default(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Vendor returns the vendor identifier the registry was built for.
func (r *Registry) Vendor() string {
	return r.vendor
}

// Resolve never fails: vendor binding, then default binding, then the generic
// Object fallback for unrecognized codes and names.
func (r *Registry) Resolve(code int, name string) DataType {
	for reg := r; reg != nil; reg = reg.parent {
		if dt, ok := reg.lookup(code, name); ok {
			return dt
		}
	}

	key := normalizeName(name)
	if _, seen := r.warned.LoadOrStore(key, struct{}{}); !seen {
		r.log.Warn().
			Str("vendor", r.vendor).
			Int("sql_type", code).
			Str("type_name", name).
			Msg("Unrecognized SQL type, using generic object type")
	}
	return Object
}

// ResolveName resolves a catalog type name, deriving the code with CodeForName.
func (r *Registry) ResolveName(name string) DataType {
	return r.Resolve(CodeForName(name), name)
}

func (r *Registry) lookup(code int, name string) (DataType, bool) {
	if name != "" {
		n := normalizeName(name)
		if dt, ok := r.byName[n]; ok {
			return dt, true
		}
		if dt, ok := r.byName[baseName(n)]; ok {
			return dt, true
		}
	}
	dt, ok := r.byCode[code]
	return dt, ok
}

func defaultCodes() map[int]DataType {
	return map[int]DataType{
		CodeChar:          Char,
		CodeVarChar:       VarChar,
		CodeLongVarChar:   LongVarChar,
		CodeNChar:         NChar,
		CodeNVarChar:      NVarChar,
		CodeLongNVarChar:  LongNVarChar,
		CodeClob:          Clob,
		CodeNClob:         NClob,
		CodeTinyInt:       TinyInt,
		CodeSmallInt:      SmallInt,
		CodeInteger:       Integer,
		CodeBigInt:        BigInt,
		CodeNumeric:       Numeric,
		CodeDecimal:       Decimal,
		CodeReal:          Real,
		CodeFloat:         Float,
		CodeDouble:        Double,
		CodeBoolean:       Boolean,
		CodeBit:           Bit,
		CodeDate:          Date,
		CodeTime:          Time,
		CodeTimeTZ:        TimeTZ,
		CodeTimestamp:     Timestamp,
		CodeTimestampTZ:   TimestampTZ,
		CodeBinary:        Binary,
		CodeVarBinary:     VarBinary,
		CodeLongVarBinary: LongVarBinary,
		CodeBlob:          Blob,
		CodeObject:        Object,
	}
}

func defaultNames() map[string]DataType {
	return map[string]DataType{
		"CHAR":                     Char,
		"CHARACTER":                Char,
		"VARCHAR":                  VarChar,
		"CHARACTER VARYING":        VarChar,
		"LONGVARCHAR":              LongVarChar,
		"TEXT":                     LongVarChar,
		"NCHAR":                    NChar,
		"NVARCHAR":                 NVarChar,
		"CLOB":                     Clob,
		"NCLOB":                    NClob,
		"TINYINT":                  TinyInt,
		"SMALLINT":                 SmallInt,
		"INTEGER":                  Integer,
		"INT":                      Integer,
		"BIGINT":                   BigInt,
		"NUMERIC":                  Numeric,
		"DECIMAL":                  Decimal,
		"REAL":                     Real,
		"FLOAT":                    Float,
		"DOUBLE":                   Double,
		"DOUBLE PRECISION":         Double,
		"BOOLEAN":                  Boolean,
		"BIT":                      Bit,
		"DATE":                     Date,
		"TIME":                     Time,
		"TIME WITH TIME ZONE":      TimeTZ,
		"TIMESTAMP":                Timestamp,
		"TIMESTAMP WITH TIME ZONE": TimestampTZ,
		"BINARY":                   Binary,
		"VARBINARY":                VarBinary,
		"BLOB":                     Blob,
		"UUID":                     UUID,
	}
}
