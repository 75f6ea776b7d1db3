package lib

import "os"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StoreConfig selects the database behind a Store.
type StoreConfig struct {
	// Driver is DriverSQLite or DriverPostgres.
	Driver string

	// DSN is passed to sql.Open. For sqlite an empty DSN means a private
	// in-memory database.
	DSN string

	// InitSchema applies the embedded migrations when the store is opened.
	InitSchema bool
}

// ConfigFromEnv reads DERIVSTUFF_DRIVER and DERIVSTUFF_DSN, defaulting to an
// in-memory sqlite database with the schema applied.
func ConfigFromEnv() StoreConfig {
	cfg := StoreConfig{
		Driver:     DriverSQLite,
		InitSchema: true,
	}
	if driver := os.Getenv("DERIVSTUFF_DRIVER"); driver != "" {
		cfg.Driver = driver
	}
	if dsn := os.Getenv("DERIVSTUFF_DSN"); dsn != "" {
		cfg.DSN = dsn
	}
	return cfg
}
