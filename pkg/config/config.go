package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFirestore = "firestore"
	StoreSQLite    = "sqlite"
	StorePostgres  = "postgres"
)

type Config struct {
	ServerPort  string
	Environment string

	StoreDriver                string
	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	DBDSN                      string
	DBMaxOpenConns             int
	DBLogLevel                 string

	JWTSecret   string
	JWTExpiry   int64
	AdminEmails []string
	BcryptCost  int

	LogLevel string
	LogFile  string

	AuthRateLimit       float64
	OrphanSweepSchedule string
	MetricsEnabled      bool
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StoreDriver:                strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite)),
		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		DBDSN:                      getEnv("DB_DSN", "rewear.db"),
		DBMaxOpenConns:             getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBLogLevel:                 getEnv("DB_LOG_LEVEL", "warn"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTExpiry:   getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		AdminEmails: getEnvAsList("ADMIN_EMAILS"),
		BcryptCost:  getEnvAsInt("BCRYPT_COST", 10),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		AuthRateLimit:       getEnvAsFloat("AUTH_RATE_LIMIT", 5),
		OrphanSweepSchedule: getEnv("ORPHAN_SWEEP_SCHEDULE", "@every 1h"),
		MetricsEnabled:      getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreFirestore:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore store")
		}
	case StoreSQLite, StorePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for the %s store", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		if c.Environment == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.JWTSecret = "development-only-secret"
	}

	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiry) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, lower-casing each entry.
func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
