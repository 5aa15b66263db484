package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	StoreBackend   string
	MySQLDSN       string
	CacheEnabled   bool
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	FeedBase       string
	FeedKey        string
	FeedRPS        int
	Workers        int
	ReviewRPS      float64
	ReviewBurst    int
	RequestTimeout time.Duration
	TrustProxy     bool
}

// Load reads an optional .env file, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}

	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		StoreBackend:   strings.ToLower(env("STORE_BACKEND", BackendMemory)),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/houses?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		CacheEnabled:   boolEnv("CACHE_ENABLED", false),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		FeedBase:       env("FEED_BASE_URL", ""),
		FeedKey:        env("FEED_API_KEY", ""),
		FeedRPS:        atoi("FEED_RPS", 5),
		Workers:        atoi("INGEST_WORKERS", 4),
		ReviewRPS:      floatEnv("REVIEW_RPS", 1),
		ReviewBurst:    atoi("REVIEW_BURST", 5),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		TrustProxy:     boolEnv("TRUST_PROXY", false),
	}
	if c.StoreBackend != BackendMemory && c.StoreBackend != BackendMySQL {
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using memory")
		c.StoreBackend = BackendMemory
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatEnv(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
