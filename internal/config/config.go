package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Identity: the snapshot key is derived from this name
	AppName string

	// Snapshot store
	DataBackend  string
	SnapshotDir  string
	SQLiteDBPath string

	// AMQP (optional; disables snapshot-saved publishing when empty)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Chat proxy
	OpenAIModel string

	// Screen variant options, consolidated from the three near-identical
	// calculator variants
	CurrencyCode               string
	WeekdayNavigationEnabled   bool
	QuantityStepButtonsEnabled bool
}

func Load() *Config {
	cfg := &Config{
		Port:    getEnv("PORT", "8081"),
		AppName: getEnv("APP_NAME", "VentaClara"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SnapshotDir:  getEnv("SNAPSHOT_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ventaclara.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ventaclara"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "snapshot_saved"),

		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		CurrencyCode:               getEnv("CURRENCY_CODE", "USD"),
		WeekdayNavigationEnabled:   getEnvBool("WEEKDAY_NAVIGATION_ENABLED", false),
		QuantityStepButtonsEnabled: getEnvBool("QUANTITY_STEP_BUTTONS_ENABLED", false),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.AppName) == "" {
		errors = append(errors, "app name cannot be empty")
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Currency codes are ISO-4217 style: three letters
	if code := strings.TrimSpace(c.CurrencyCode); len(code) != 3 || code != strings.ToUpper(code) {
		errors = append(errors, fmt.Sprintf("invalid currency code '%s': must be three uppercase letters", c.CurrencyCode))
	}

	if strings.TrimSpace(c.OpenAIModel) == "" {
		errors = append(errors, "OpenAI model cannot be empty")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SnapshotKey returns the fixed persistence key for this deployment.
func (c *Config) SnapshotKey() string {
	return "salesData-" + c.AppName
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
