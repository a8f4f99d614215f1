package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	HTTPTimeout time.Duration
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Google Maps
	PlacesBase   string
	GeocodeBase  string
	MapsKey      string
	MapsRPS      int
	MapsTimeout  time.Duration
	MapsLanguage string
	MaxResults   int

	// Auth
	GoogleClientID string
	JWTSecret      string
	JWTTTL         time.Duration

	CORSOrigins    []string
	ScreenshotsDir string
	CacheTTL       time.Duration

	// Scraper run parameters
	ScrapeWorkers   int
	ScrapeLocations []string
	ScrapeTypes     []string
	ScrapeRadiusKM  float64
}

const defaultJWTSecret = "dev-secret-change-me"

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
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/caesar?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		PlacesBase:   env("PLACES_BASE_URL", "https://places.googleapis.com/v1"),
		GeocodeBase:  env("GEOCODE_BASE_URL", "https://maps.googleapis.com/maps/api"),
		MapsKey:      env("GOOGLE_MAPS_API_KEY", ""),
		MapsRPS:      atoi("MAPS_RPS", 5),
		MapsTimeout:  time.Duration(atoi("MAPS_TIMEOUT_SECONDS", 30)) * time.Second,
		MapsLanguage: env("MAPS_LANGUAGE", "de"),
		MaxResults:   atoi("MAX_SEARCH_RESULTS", 60),

		GoogleClientID: env("GOOGLE_CLIENT_ID", ""),
		JWTSecret:      env("JWT_SECRET", defaultJWTSecret),
		JWTTTL:         time.Duration(atoi("JWT_TTL_HOURS", 168)) * time.Hour,

		CORSOrigins:    splitCSV(env("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		ScreenshotsDir: env("SCREENSHOTS_DIR", "screenshots"),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		ScrapeWorkers:   atoi("SCRAPE_WORKERS", 4),
		ScrapeLocations: splitCSV(env("SCRAPE_LOCATIONS", "")),
		ScrapeTypes:     splitCSV(env("SCRAPE_BUSINESS_TYPES", "")),
		ScrapeRadiusKM:  atof("SCRAPE_RADIUS_KM", 10),
	}
	if c.MapsKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is empty; aggregation and scraping will fail")
	}
	if c.JWTSecret == defaultJWTSecret && c.AppEnv == "prod" {
		log.Warn().Msg("JWT_SECRET is the dev default")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
