package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Redis result cache; caching is disabled when RedisAddr is empty.
	RedisAddr string
	RedisPass string
	CacheTTL  int // seconds
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/diagnostics.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	cacheTTL := 300
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cacheTTL = n
		}
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),
		CacheTTL:  cacheTTL,
	}
}
