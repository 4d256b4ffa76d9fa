package shared

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	// Remote backend. Empty RedisAddr selects the local file backend.
	RedisAddr string
	RedisDB   int
	RedisPass string

	// Local backend snapshot directory.
	DataDir string

	// Static admin credential pair (client-side gate, not real auth).
	AdminUser string
	AdminPass string

	// Concurrency bound for reconciliation seed writes.
	Workers int

	// Requests/second allowed on write endpoints.
	WriteRPS int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:    env("APP_ENV", "prod"),
		HTTPAddr:  env("HTTP_ADDR", ":8080"),
		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		DataDir:   env("DATA_DIR", "./data"),
		AdminUser: env("ADMIN_USER", "admin"),
		AdminPass: env("ADMIN_PASSWORD", ""),
		Workers:   atoi("SEED_WORKERS", 8),
		WriteRPS:  atoi("WRITE_RPS", 10),
	}
	if c.AdminPass == "" {
		log.Warn().Msg("ADMIN_PASSWORD is empty; admin mutations are disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
