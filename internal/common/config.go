package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Template  TemplateConfig
	Rules     RulesConfig
	Batch     BatchConfig
	Vibration VibrationSentinels
}

// TemplateConfig locates the blank-format workbook whose header row
// supplies the target schema.
type TemplateConfig struct {
	Path  string
	Sheet string
}

// RulesConfig optionally points at external YAML rule sets.
type RulesConfig struct {
	InvoicePath  string
	ContractPath string
}

// BatchConfig sizes the concurrent batch queue.
type BatchConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// VibrationSentinels are the cell literals that locate the header and
// direction rows of a vibration-report sheet.
type VibrationSentinels struct {
	Header    string
	Direction string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Template: TemplateConfig{
			Path:  getEnv("TEMPLATE_PATH", ""),
			Sheet: getEnv("TEMPLATE_SHEET", "Sheet1"),
		},
		Rules: RulesConfig{
			InvoicePath:  getEnv("INVOICE_RULES_PATH", ""),
			ContractPath: getEnv("CONTRACT_RULES_PATH", ""),
		},
		Batch: BatchConfig{
			Workers:        getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize:      getEnvAsInt("BATCH_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("BATCH_TIMEOUT", 2*time.Minute),
		},
		Vibration: VibrationSentinels{
			Header:    getEnv("VIB_HEADER_SENTINEL", "EQUIPMENT"),
			Direction: getEnv("VIB_DIRECTION_SENTINEL", "DIRECTION"),
		},
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Template.Path == "" {
		return NewAppError("CONFIG_ERROR", "TEMPLATE_PATH is required", ErrInvalidInput)
	}
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing.
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
