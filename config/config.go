package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	SQLitePath  string
	ImagesDir   string
}

// Load reads an optional .env file and falls back to defaults that run the
// server locally against a sqlite file.
func Load() Config {
	godotenv.Load()

	return Config{
		Addr:        getenv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "store.db"),
		ImagesDir:   getenv("IMAGES_DIR", "./images"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
