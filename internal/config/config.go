package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	// API Configuration
	API APIConfig

	// Realtime socket configuration
	Socket SocketConfig

	// Third-party form submission configuration
	Forms FormsConfig

	// Idle timeout configuration
	Idle IdleConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds the backend REST API configuration
type APIConfig struct {
	BaseURL string
}

// SocketConfig holds the realtime socket endpoint configuration
type SocketConfig struct {
	URL string
}

// FormsConfig holds the third-party form submission configuration
type FormsConfig struct {
	Endpoint  string
	AccessKey string
}

// IdleConfig holds idle-logout timing configuration
type IdleConfig struct {
	Timeout  time.Duration // inactivity window before forced logout
	Throttle time.Duration // minimum gap between activity-driven timer resets
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// API base URL - default to the local mock server, allow override for dev
	apiURL := os.Getenv("COURTSIDE_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	// Socket URL - default matches the mock server's ws endpoint
	socketURL := os.Getenv("COURTSIDE_SOCKET_URL")
	if socketURL == "" {
		socketURL = "ws://localhost:8080/ws"
	}

	// Form submission endpoint. The access key has no default: form
	// submission is disabled without it.
	formEndpoint := os.Getenv("COURTSIDE_FORM_ENDPOINT")
	if formEndpoint == "" {
		formEndpoint = "https://api.web3forms.com/submit"
	}
	formAccessKey := os.Getenv("COURTSIDE_FORM_ACCESS_KEY")

	idleTimeout, err := parseDuration("COURTSIDE_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	idleThrottle, err := parseDuration("COURTSIDE_IDLE_THROTTLE", 30*time.Second)
	if err != nil {
		return nil, err
	}

	// Logging configuration - defaults suitable for production
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		API: APIConfig{
			BaseURL: apiURL,
		},
		Socket: SocketConfig{
			URL: socketURL,
		},
		Forms: FormsConfig{
			Endpoint:  formEndpoint,
			AccessKey: formAccessKey,
		},
		Idle: IdleConfig{
			Timeout:  idleTimeout,
			Throttle: idleThrottle,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}

func parseDuration(env string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(env)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", env, err)
	}
	return d, nil
}
