package pg

import (
	"fmt"
	"time"
)

// Config defines a PostgreSQL connection and its pool.
type Config struct {
	// Debug logs every query through the debug hook.
	Debug bool `yaml:"debug" default:"false"`
	// SlowQueryThreshold marks slower queries with a warning, 0 disables the check.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" default:"100ms"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `yaml:"host"     validate:"required"`
	// Port is the PostgreSQL server port.
	Port int `yaml:"port"     validate:"required"`
	// User is the database role to connect as.
	User string `yaml:"user"     validate:"required"`
	// Password of User. It is masked when the config is printed.
	Password string `yaml:"password" validate:"required" mask:"true"`
	// Database is the name of the database to connect to.
	Database string `yaml:"database" validate:"required"`

	// SSLMode is the libpq sslmode: disable, allow, prefer, require, verify-ca or verify-full.
	SSLMode string `yaml:"sslmode"         default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	// SearchPath is the schema search path set on every connection.
	SearchPath string `yaml:"search_path"     default:"public"`
	// ConnectTimeout bounds establishing a single connection, rounded down to seconds.
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	// PoolMaxConns is the maximum number of pooled connections. 0 keeps the pgx default.
	PoolMaxConns int32 `yaml:"pool_max_conns"          default:"4"`
	// PoolMinConns is the number of connections the pool keeps open. 0 keeps the pgx default.
	PoolMinConns int32 `yaml:"pool_min_conns"          default:"1"`
	// PoolMaxConnLifetime closes connections older than this. 0 keeps the pgx default.
	PoolMaxConnLifetime time.Duration `yaml:"pool_max_conn_lifetime"  default:"1h"`
	// PoolMaxConnIdleTime closes connections idle for longer than this. 0 keeps the pgx default.
	PoolMaxConnIdleTime time.Duration `yaml:"pool_max_conn_idle_time" default:"30m"`
}

// dsn builds the keyword/value connection string parsed by pgxpool.
func (c Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode, c.SearchPath,
		int(c.ConnectTimeout.Seconds()),
	)
}
