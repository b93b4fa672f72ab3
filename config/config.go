package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/wanderergaurav/Varuna-marine/database"
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Storage backend: "postgres" or "memory"
	StorageBackend string

	// Route catalog YAML for the memory backend, empty for the built-in sample fleet
	RoutesFile string

	// HTTP server
	HTTPAddr string

	// NATS configuration
	NATSEnabled bool
	NATSServers string

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// UsesMemoryBackend reports whether the ledger runs without postgres
func (c *Config) UsesMemoryBackend() bool {
	return c.StorageBackend == BackendMemory
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseName:   os.Getenv("DATABASE_NAME"),
		StorageBackend: getEnvWithDefault("STORAGE_BACKEND", BackendPostgres),
		RoutesFile:     os.Getenv("ROUTES_FILE"),

		// HTTP
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":3000"),

		// NATS
		NATSEnabled: os.Getenv("NATS_ENABLED") == "true",
		NATSServers: getEnvWithDefault("NATS_SERVERS", "nats://nats:4222"),

		// OpenTelemetry
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "varuna-ledger"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportIntervalMillis: 60000,

		// Logging
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		parsed, err := strconv.Atoi(interval)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("OTEL_EXPORT_INTERVAL_MS must be a positive integer, got %q", interval)
		}
		config.OTelExportIntervalMillis = parsed
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	switch config.StorageBackend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, config.StorageBackend)
	}

	switch config.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return nil, fmt.Errorf("OTEL_EXPORTER_TYPE must be console, otlp or none, got %q", config.OTelExporterType)
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.StorageBackend == BackendPostgres && config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// Load reads the configuration from the environment without touching the global instance
func Load() (*Config, error) {
	return load()
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:              "test",
		StorageBackend:           BackendMemory,
		HTTPAddr:                 ":0",
		OTelServiceName:          "varuna-ledger-test",
		OTelExporterType:         "none",
		OTelExportIntervalMillis: 60000,
		LogLevel:                 "debug",
		LogFormat:                "text",
	}
}
