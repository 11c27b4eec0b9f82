package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	PlacesBaseURL string
	PlacesAPIKey  string
	OCRBaseURL    string
	HTTPTimeout   time.Duration

	SearchRadiusM float64 // 100–150m is the useful signage range
	DefaultBudget float64
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8084"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	timeoutSec, _ := strconv.Atoi(getenv("HTTP_TIMEOUT_SEC", "10"))
	radius, _ := strconv.ParseFloat(getenv("SEARCH_RADIUS_M", "150"), 64)
	budget, _ := strconv.ParseFloat(getenv("DEFAULT_BUDGET", "20"), 64)
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/dinescan-service.log"),
		MaxUploadMB:  mb,

		PlacesBaseURL: getenv("PLACES_BASE_URL", "http://127.0.0.1:9080"),
		PlacesAPIKey:  getenv("PLACES_API_KEY", ""),
		OCRBaseURL:    getenv("OCR_BASE_URL", "http://127.0.0.1:9081"),
		HTTPTimeout:   time.Duration(timeoutSec) * time.Second,

		SearchRadiusM: radius,
		DefaultBudget: budget,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
