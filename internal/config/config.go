package config

import (
	"fmt"
	"os"
	"time"
)

// Config is everything the service reads from the environment. Load runs
// once in main; prod sets real env vars, dev relies on .env via godotenv.
type Config struct {
	Addr   string
	APIURL string

	CookieSecret  []byte
	SecureCookies bool

	RecaptchaSecret   string
	RecaptchaEndpoint string

	APITimeout    time.Duration
	StoreCacheTTL time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Addr:              getenv("ADDR", ":8080"),
		APIURL:            os.Getenv("API_URL"),
		SecureCookies:     os.Getenv("SECURE_COOKIES") == "true",
		RecaptchaSecret:   os.Getenv("RECAPTCHA_SECRET"),
		RecaptchaEndpoint: os.Getenv("RECAPTCHA_ENDPOINT"),
		APITimeout:        getDuration("API_TIMEOUT", 15*time.Second),
		StoreCacheTTL:     getDuration("STORE_CACHE_TTL", 5*time.Minute),
	}

	if cfg.APIURL == "" {
		return Config{}, fmt.Errorf("API_URL environment variable is required")
	}

	secret := os.Getenv("COOKIE_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("COOKIE_SECRET environment variable is required")
	}
	cfg.CookieSecret = []byte(secret)

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
