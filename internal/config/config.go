package config

import (
	"os"
	"strings"
	"time"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port         string
	MongoURI     string
	MongoDBName  string
	MongoTimeout time.Duration
	ImageHostURL string
	ImageHostKey string
}

// Load reads environment variables and applies defaults. The image host
// settings may stay empty; uploads then fail as upstream errors.
func Load() Config {
	return Config{
		Port:         envDefault("PORT", "8080"),
		MongoURI:     envDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:  envDefault("MONGO_DBNAME", "nursery_db"),
		MongoTimeout: 15 * time.Second,
		ImageHostURL: strings.TrimSpace(os.Getenv("IMAGE_HOST_URL")),
		ImageHostKey: strings.TrimSpace(os.Getenv("IMAGE_HOST_KEY")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
