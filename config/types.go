package config

import (
	"time"

	"github.com/knadh/koanf/v2"
)

// Config is the complete dbfixture configuration. Keys not present in the struct stay
// reachable through the getters.
type Config struct {
	Database DatabaseConfig `koanf:"database" json:"database" yaml:"database"`
	Fixture  FixtureConfig  `koanf:"fixture" json:"fixture" yaml:"fixture"`
	Log      LogConfig      `koanf:"log" json:"log" yaml:"log"`

	k *koanf.Koanf `json:"-" yaml:"-"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Type     string `koanf:"type" json:"type" yaml:"type" validate:"required,oneof=postgresql oracle mysql sqlserver sqlite"`
	Host     string `koanf:"host" json:"host" yaml:"host"`
	Port     int    `koanf:"port" json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Database string `koanf:"database" json:"database" yaml:"database"`
	Username string `koanf:"username" json:"username" yaml:"username"`
	Password string `koanf:"password" json:"password" yaml:"password"`
	// Schema scopes metadata lookups: the PostgreSQL/SQL Server schema, the MySQL
	// database or the Oracle owner. Empty means the session default.
	Schema string `koanf:"schema" json:"schema" yaml:"schema"`

	// ConnectionString is a vendor DSN used verbatim instead of the fields above.
	ConnectionString string `koanf:"connectionstring" json:"connectionstring" yaml:"connectionstring"`

	Pool    PoolConfig    `koanf:"pool" json:"pool" yaml:"pool"`
	Query   QueryConfig   `koanf:"query" json:"query" yaml:"query"`
	TLS     TLSConfig     `koanf:"tls" json:"tls" yaml:"tls"`
	Connect ConnectConfig `koanf:"connect" json:"connect" yaml:"connect"`
	Oracle  OracleConfig  `koanf:"oracle" json:"oracle" yaml:"oracle"`
}

// PoolConfig holds connection pool settings.
type PoolConfig struct {
	Max      PoolMaxConfig  `koanf:"max" json:"max" yaml:"max"`
	Idle     PoolIdleConfig `koanf:"idle" json:"idle" yaml:"idle"`
	Lifetime LifetimeConfig `koanf:"lifetime" json:"lifetime" yaml:"lifetime"`
}

// PoolMaxConfig holds maximum connections settings.
type PoolMaxConfig struct {
	Connections int32 `koanf:"connections" json:"connections" yaml:"connections" validate:"gte=0"`
}

// PoolIdleConfig holds idle connections settings.
type PoolIdleConfig struct {
	Connections int32         `koanf:"connections" json:"connections" yaml:"connections" validate:"gte=0"`
	Time        time.Duration `koanf:"time" json:"time" yaml:"time"`
}

// LifetimeConfig holds maximum lifetime settings for connections.
type LifetimeConfig struct {
	Max time.Duration `koanf:"max" json:"max" yaml:"max"`
}

// QueryConfig holds settings related to statement logging and slow statement detection.
type QueryConfig struct {
	Slow SlowQueryConfig `koanf:"slow" json:"slow" yaml:"slow"`
	Log  QueryLogConfig  `koanf:"log" json:"log" yaml:"log"`
}

// SlowQueryConfig holds settings for slow statement detection.
type SlowQueryConfig struct {
	Threshold time.Duration `koanf:"threshold" json:"threshold" yaml:"threshold"`
}

// QueryLogConfig holds settings for statement logging.
type QueryLogConfig struct {
	// Parameters logs bound values. Sensitive column names are still masked.
	Parameters bool `koanf:"parameters" json:"parameters" yaml:"parameters"`
	MaxLength  int  `koanf:"maxlength" json:"maxlength" yaml:"maxlength" validate:"gte=0"`
}

// TLSConfig holds transport security settings.
type TLSConfig struct {
	// Mode is the PostgreSQL sslmode or the SQL Server encrypt value.
	Mode string `koanf:"mode" json:"mode" yaml:"mode"`
}

// ConnectConfig holds connection establishment settings.
type ConnectConfig struct {
	Timeout time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout"`
}

// OracleConfig holds Oracle service resolution settings. ServiceName wins over SID;
// without either Database is used as the service name.
type OracleConfig struct {
	ServiceName string `koanf:"servicename" json:"servicename" yaml:"servicename"`
	SID         string `koanf:"sid" json:"sid" yaml:"sid"`
}

// FixtureConfig holds the defaults a Session applies datasets with.
type FixtureConfig struct {
	Operation            string `koanf:"operation" json:"operation" yaml:"operation"`
	BatchSize            int    `koanf:"batchsize" json:"batchsize" yaml:"batchsize" validate:"gte=1"`
	Transactional        bool   `koanf:"transactional" json:"transactional" yaml:"transactional"`
	CaseSensitive        bool   `koanf:"casesensitive" json:"casesensitive" yaml:"casesensitive"`
	IgnoreUnknownColumns bool   `koanf:"ignoreunknowncolumns" json:"ignoreunknowncolumns" yaml:"ignoreunknowncolumns"`
	ColumnCache          bool   `koanf:"columncache" json:"columncache" yaml:"columncache"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty"`
}
