package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads configuration from the environment. JWT_SECRET has no default
// and must be set; everything else falls back to local-development values.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttl := 2 * time.Hour
	if v := getEnv("TOKEN_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %v", v, err)
		}
		ttl = d
	}

	return &Config{
		Port:      getEnv("PORT", "3001"),
		MongoURI:  getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName:    getEnv("MONGODB_DB", "googlebooks"),
		JWTSecret: secret,
		TokenTTL:  ttl,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
