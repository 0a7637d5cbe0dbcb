package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ergasia-marketplace/pkg/logger"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	FrontendURL string
	LogLevel    string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Recommendation service
	RecommenderURL     string
	RecommenderTimeout time.Duration
	RecommenderPort    string
	RecommendationSize int
	// Face recognition service
	FaceServiceURL     string
	FaceServiceTimeout time.Duration
	FaceImageMaxDim    int
	// Job discovery
	JobsPerPage int
	SearchMode  string
	// Category cache
	CategoryCacheTTL    time.Duration
	CategoryRefreshSpec string
	// Job posting wizard
	WizardDraftTTL time.Duration
	DraftSweepSpec string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitFaceThreshold   int
	RateLimitFaceFailClosed  bool
	// Failed face logins before the client address is blocked
	FaceLoginMaxAttempts int
	FaceLoginBlock       time.Duration
	// Migrations
	MigrationsDir string
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "ergasia"),
		JWTTTL:      getEnvDuration("JWT_TTL_HOURS", 24, time.Hour),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Recommendation service
		RecommenderURL:     strings.TrimRight(getEnv("RECOMMENDER_URL", "http://localhost:5001"), "/"),
		RecommenderTimeout: getEnvDuration("RECOMMENDER_TIMEOUT_SECONDS", 5, time.Second),
		RecommenderPort:    getEnv("RECOMMENDER_PORT", "5001"),
		RecommendationSize: getEnvInt("RECOMMENDATION_PAGE_SIZE", 5),
		// Face recognition service
		FaceServiceURL:     strings.TrimRight(getEnv("FACE_SERVICE_URL", "http://localhost:8000"), "/"),
		FaceServiceTimeout: getEnvDuration("FACE_SERVICE_TIMEOUT_SECONDS", 15, time.Second),
		FaceImageMaxDim:    getEnvInt("FACE_IMAGE_MAX_DIMENSION", 640),
		// Job discovery
		JobsPerPage: getEnvInt("JOBS_PER_PAGE", 12),
		SearchMode:  getEnv("SEARCH_MODE", "name"),
		// Category cache
		CategoryCacheTTL:    getEnvDuration("CATEGORY_CACHE_TTL_SECONDS", 300, time.Second),
		CategoryRefreshSpec: getEnv("CATEGORY_REFRESH_SPEC", "@every 5m"),
		// Job posting wizard
		WizardDraftTTL: getEnvDuration("WIZARD_DRAFT_TTL_MINUTES", 60, time.Minute),
		DraftSweepSpec: getEnv("DRAFT_SWEEP_SPEC", "@every 10m"),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		RateLimitFaceThreshold:   getEnvInt("RATE_LIMIT_FACE_THRESHOLD", 10),    // 10 face attempts per window
		RateLimitFaceFailClosed:  getEnvBool("RATE_LIMIT_FACE_FAIL_CLOSED", true),
		FaceLoginMaxAttempts:     getEnvInt("FACE_LOGIN_MAX_ATTEMPTS", 5),
		FaceLoginBlock:           getEnvDuration("FACE_LOGIN_BLOCK_MINUTES", 15, time.Minute),
		// Migrations
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}

	if cfg.DBUrl == "" {
		logger.Log.Warn("DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		logger.Log.Warn("JWT_SECRET is missing. Protected routes will reject every token.")
	}
	if cfg.RedisURL == "" {
		logger.Log.Warn("REDIS_URL not configured. Caches, drafts and rate limits stay in memory.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration reads an integer count of unit, e.g. seconds.
func getEnvDuration(key string, fallback int, unit time.Duration) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * unit
}
