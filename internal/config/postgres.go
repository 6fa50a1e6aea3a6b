package config

type PostgresConfig struct {
	Url string
}

// NewPostgresConfig reads the database settings. An empty Url makes the
// service fall back to the in-memory test-case catalog.
func NewPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Url: getEnv("DATABASE_URL", ""),
	}
}
