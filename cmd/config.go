package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config is loaded from the environment (and an optional .env file) by
// LoadConfig.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	StorageBackend    string
	CapacityEnforced  bool
	JWTSecret         string
	ContentAPIURL     string
	ContentAPIKey     string
	ContentTimeout    time.Duration
	ReconcileSchedule string
}

// LoadConfig reads the configuration through getenv (os.Getenv in
// production). Unset optional keys take their defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:          withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:            getenv("DB_HOST"),
		DBPort:            withDefault(getenv("DB_PORT"), "5432"),
		DBUser:            getenv("DB_USER"),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME"),
		DBSslMode:         withDefault(getenv("DB_SSLMODE"), "disable"),
		StorageBackend:    strings.ToLower(withDefault(getenv("STORAGE_BACKEND"), StoragePostgres)),
		CapacityEnforced:  true,
		JWTSecret:         getenv("JWT_SECRET"),
		ContentAPIURL:     getenv("CONTENT_API_URL"),
		ContentAPIKey:     getenv("CONTENT_API_KEY"),
		ReconcileSchedule: getenv("RECONCILE_SCHEDULE"),
	}

	var errList []error
	if raw := getenv("CAPACITY_ENFORCED"); raw != "" {
		enforced, err := strconv.ParseBool(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("CAPACITY_ENFORCED: %w", err))
		}
		cfg.CapacityEnforced = enforced
	}
	if raw := getenv("CONTENT_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("CONTENT_TIMEOUT: %w", err))
		}
		cfg.ContentTimeout = timeout
	}
	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			errList = append(errList, errors.New("DB_HOST and DB_NAME are required for the postgres backend"))
		}
	case StorageMemory:
	default:
		errList = append(errList, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend))
	}
	if cfg.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
