package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment        string        `mapstructure:"ENVIRONMENT"`
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	DBDriver           string        `mapstructure:"DB_DRIVER"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogFormat          string        `mapstructure:"LOG_FORMAT"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitRPS       float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int           `mapstructure:"RATE_LIMIT_BURST"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var defaults = map[string]any{
	"ENVIRONMENT":          "local",
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"DB_DRIVER":            DriverSQLite,
	"DB_SOURCE":            "restaurant_picker.db",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"CORS_ALLOWED_ORIGINS": "*",
	"RATE_LIMIT_RPS":       20.0,
	"RATE_LIMIT_BURST":     40,
	"SHUTDOWN_TIMEOUT":     "15s",
}

// LoadConfig reads app.env from path if it exists, then lets environment
// variables override every key.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read %s/app.env: %w", path, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: decode: %w", err)
	}

	config.CORSAllowedOrigins = splitList(config.CORSAllowedOrigins)

	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("config: SERVER_ADDRESS is required")
	}
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q (expected %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	if c.DBSource == "" {
		return errors.New("config: DB_SOURCE is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: invalid LOG_FORMAT %q (expected json or console)", c.LogFormat)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	// a zero burst bucket never admits a request
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return errors.New("config: RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	for _, origin := range c.CORSAllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("config: invalid CORS_ALLOWED_ORIGINS entry %q (expected * or an http:// or https:// origin)", origin)
		}
	}
	return nil
}

// splitList accepts both a real list and a single comma separated string,
// which is what an env var gives us.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
