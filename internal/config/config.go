package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ironloft/gymboard/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	APIKey     string // API key for authenticating management endpoints

	// TrustedProxies lists proxy IPs whose X-Forwarded-For headers are honored.
	TrustedProxies []string

	// Board platform API
	BoardAPIToken    string
	BoardAPIEndpoint string
	BoardAPIVersion  string
	BoardIDs         map[domain.EntityType]int64

	// Webhook ingestion. An empty secret disables signature verification.
	WebhookSecret string

	// Sync tuning
	SyncMinCallInterval time.Duration
	SyncRatePerMinute   int
	SyncRetryAttempts   int
	SyncRetryBackoff    time.Duration
	SyncSweepInterval   time.Duration

	// Inventory rules
	LowStockThreshold float64

	// Workers and caching
	WorkerCount     int
	RecordCacheSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", "gymboard"),
		APIKey:           getEnv("API_KEY", ""),
		BoardAPIToken:    getEnv("BOARD_API_TOKEN", ""),
		BoardAPIEndpoint: getEnv("BOARD_API_ENDPOINT", ""),
		BoardAPIVersion:  getEnv("BOARD_API_VERSION", ""),
		WebhookSecret:    getEnv("WEBHOOK_SECRET", ""),
	}

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.SyncRatePerMinute, err = getEnvInt("SYNC_RATE_PER_MINUTE", DefaultSyncRatePerMinute); err != nil {
		return nil, err
	}
	if cfg.SyncRetryAttempts, err = getEnvInt("SYNC_RETRY_ATTEMPTS", DefaultSyncRetryAttempts); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", DefaultWorkerCount); err != nil {
		return nil, err
	}
	if cfg.RecordCacheSize, err = getEnvInt("RECORD_CACHE_SIZE", DefaultRecordCacheSize); err != nil {
		return nil, err
	}
	if cfg.SyncMinCallInterval, err = getEnvDuration("SYNC_MIN_CALL_INTERVAL", DefaultSyncMinCallInterval); err != nil {
		return nil, err
	}
	if cfg.SyncRetryBackoff, err = getEnvDuration("SYNC_RETRY_BACKOFF", DefaultSyncRetryBackoff); err != nil {
		return nil, err
	}
	if cfg.SyncSweepInterval, err = getEnvDuration("SYNC_SWEEP_INTERVAL", DefaultSyncSweepInterval); err != nil {
		return nil, err
	}
	if cfg.LowStockThreshold, err = getEnvFloat("LOW_STOCK_THRESHOLD", DefaultLowStockThreshold); err != nil {
		return nil, err
	}

	cfg.BoardIDs = make(map[domain.EntityType]int64, len(domain.AllEntityTypes))
	for _, entityType := range domain.AllEntityTypes {
		key := boardIDEnvVar(entityType)
		raw := getEnv(key, "")
		if raw == "" {
			continue
		}
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid %s value: %w", key, parseErr)
		}
		cfg.BoardIDs[entityType] = id
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.BoardAPIToken == "" {
		return nil, fmt.Errorf("BOARD_API_TOKEN environment variable must be set")
	}

	return cfg, nil
}

// boardIDEnvVar maps an entity type to its board id environment variable,
// e.g. member -> BOARD_ID_MEMBER.
func boardIDEnvVar(entityType domain.EntityType) string {
	return "BOARD_ID_" + strings.ToUpper(string(entityType))
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
