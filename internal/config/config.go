package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	IMDbBase     string
	ModelDir     string
	FetchTimeout time.Duration
	FetchRPS     int
	SizeCap      int64
	MaxReviews   int
}

// Load reads configuration from the environment, consulting a local .env
// file first when one exists.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		IMDbBase:     env("IMDB_BASE_URL", "https://www.imdb.com"),
		ModelDir:     env("MODEL_DIR", "model"),
		FetchTimeout: time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		FetchRPS:     atoi("FETCH_RATE_PER_SEC", 2),
		SizeCap:      int64(atoi("FETCH_SIZE_CAP_BYTES", 5*1024*1024)),
		MaxReviews:   atoi("MAX_REVIEWS", 50),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
