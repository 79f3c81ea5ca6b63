package config

import "os"

// Server captures environment-supplied configuration so main stays lean.
type Server struct {
	Addr        string
	StoreKind   string
	DatabaseURL string
	RedisURL    string
	StaticDir   string
}

// Store backends selectable through PHONEBOOK_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	kind := os.Getenv("PHONEBOOK_STORE")
	if kind == "" {
		kind = StoreMemory
	}

	static := os.Getenv("STATIC_DIR")
	if static == "" {
		static = "dist"
	}

	return Server{
		Addr:        ":" + port,
		StoreKind:   kind,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		StaticDir:   static,
	}
}
