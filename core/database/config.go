package database

// Config holds connection pool settings shared by every relational source.
// The connection string itself is supplied per extraction.
type Config struct {
	// TimeoutSeconds bounds the initial connect and ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxOpenConns caps open connections per extraction.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"5"`
	// MaxIdleConns caps idle connections kept in the pool.
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"2"`
	// ConnMaxLifetimeMinutes recycles connections after this many minutes.
	ConnMaxLifetimeMinutes int `mapstructure:"conn_max_lifetime_minutes" default:"10"`
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// IsValidDriver reports whether driver names a supported relational backend.
func IsValidDriver(driver string) bool {
	switch driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
		return true
	default:
		return false
	}
}
