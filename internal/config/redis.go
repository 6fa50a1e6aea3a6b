package config

import "strconv"

type RedisConfig struct {
	DB       int
	Addr     string
	Password string
}

// NewRedisConfig reads the redis settings. An empty Addr disables the
// test-case cache tier entirely.
func NewRedisConfig() *RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}
	return &RedisConfig{
		DB:       db,
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
	}
}
