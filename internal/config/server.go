package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rpgo/annuity-planner/internal/domain"
)

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Port           int
	LogLevel       string
	DevMode        bool
	AllowedOrigins []string
	Assumptions    domain.Assumptions
	MortalityTable string // optional path to a custom table
}

// LoadServerConfig reads configuration from environment variables, after
// loading a .env file when one exists.
func LoadServerConfig() (*ServerConfig, error) {
	_ = godotenv.Load()

	assumptions := domain.DefaultAssumptions()
	assumptions.AnnualReturnRate = getEnvAsFloat("ANNUITY_RETURN_RATE", assumptions.AnnualReturnRate)

	cfg := &ServerConfig{
		Port:           getEnvAsInt("ANNUITY_PORT", 8080),
		LogLevel:       getEnv("ANNUITY_LOG_LEVEL", "info"),
		DevMode:        getEnvAsBool("ANNUITY_DEV_MODE", false),
		AllowedOrigins: getEnvAsList("ANNUITY_ALLOWED_ORIGINS", []string{"*"}),
		Assumptions:    assumptions,
		MortalityTable: getEnv("ANNUITY_MORTALITY_TABLE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("ANNUITY_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if err := c.Assumptions.Validate(); err != nil {
		return fmt.Errorf("ANNUITY_RETURN_RATE: %w", err)
	}
	return nil
}

// Addr is the listen address for the configured port.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
