// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default messaging-provider endpoints, overridable per environment.
const (
	defaultTokenEndpoint = "https://api.line.me/v2/oauth/accessToken"
	defaultPushEndpoint  = "https://api.line.me/v2/bot/message/push"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion            string
	ShopReservationTable string
	ChannelTokenTable    string
	RemindMessageTable   string
	EventBusName         string
	MetricsNamespace     string

	// Messaging provider endpoints
	TokenEndpoint string
	PushEndpoint  string

	// Lambda configuration
	IsLambda bool

	// Authentication
	AuthSecret   string
	AuthIssuer   string
	AuthDisabled bool

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables. Outside Lambda a
// local .env file is merged in first when present.
func Load() (*Config, error) {
	isLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !isLambda {
		// Best effort; absence of a .env file is fine.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:            getEnv("AWS_REGION", "ap-northeast-1"),
		ShopReservationTable: getEnv("SHOP_RESERVATION_TABLE", "ShopReservation"),
		ChannelTokenTable:    getEnv("CHANNEL_ACCESS_TOKEN_TABLE", "ChannelAccessToken"),
		RemindMessageTable:   getEnv("REMIND_MESSAGE_TABLE", "RemindMessage"),
		EventBusName:         getEnv("EVENT_BUS_NAME", "reservation-events"),
		MetricsNamespace:     getEnv("METRICS_NAMESPACE", "ReservationBackend"),

		TokenEndpoint: getEnv("API_ACCESSTOKEN_URL", defaultTokenEndpoint),
		PushEndpoint:  getEnv("API_PUSH_MESSAGE_URL", defaultPushEndpoint),

		IsLambda: isLambda,

		AuthSecret:   getEnv("AUTH_SECRET", ""),
		AuthIssuer:   getEnv("AUTH_ISSUER", "https://access.line.me"),
		AuthDisabled: getEnvBool("AUTH_DISABLED", false),

		LogLevel: getEnv("LOGGER_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.ShopReservationTable == "" {
			return fmt.Errorf("SHOP_RESERVATION_TABLE is required")
		}
		if c.ChannelTokenTable == "" {
			return fmt.Errorf("CHANNEL_ACCESS_TOKEN_TABLE is required")
		}
		if c.RemindMessageTable == "" {
			return fmt.Errorf("REMIND_MESSAGE_TABLE is required")
		}
		if !c.AuthDisabled && c.AuthSecret == "" {
			return fmt.Errorf("AUTH_SECRET is required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
