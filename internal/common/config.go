package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ternarybob/snowbridge/internal/models"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	ServiceNow  ServiceNowConfig  `toml:"servicenow"`
	Auth        models.AuthConfig `toml:"auth"`
	Logging     LoggingConfig     `toml:"logging"`
	Tools       ToolsConfig       `toml:"tools"`
}

// ServiceNowConfig describes the target instance endpoint
type ServiceNowConfig struct {
	InstanceURL       string  `toml:"instance_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 disables client-side throttling
}

// Timeout returns the request timeout applied to both token and data calls
func (c ServiceNowConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// APIURL derives the REST API root from the instance URL. Table URLs are
// built from this value only, never hand-assembled per call site.
func (c ServiceNowConfig) APIURL() string {
	return strings.TrimRight(c.InstanceURL, "/") + "/api/now"
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// ToolsConfig bounds the page sizes handed to the tool operations
type ToolsConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// NewDefaultConfig returns the built-in defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "production",
		ServiceNow: ServiceNowConfig{
			TimeoutSeconds: 30,
		},
		Auth: models.AuthConfig{
			Type: models.AuthTypeBasic,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Tools: ToolsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// An empty path skips the file stage so the binaries can run from environment
// variables alone.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// Validate checks the parts of the configuration the core depends on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServiceNow.InstanceURL) == "" {
		return fmt.Errorf("servicenow.instance_url is required")
	}
	return c.Auth.Validate()
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SNOWBRIDGE_ENV"); v != "" {
		config.Environment = v
	}
	if v := os.Getenv("SERVICENOW_INSTANCE_URL"); v != "" {
		config.ServiceNow.InstanceURL = v
	}
	if v := os.Getenv("SERVICENOW_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			config.ServiceNow.TimeoutSeconds = timeout
		}
	}
	if v := os.Getenv("SERVICENOW_AUTH_TYPE"); v != "" {
		config.Auth.Type = models.AuthType(strings.ToLower(v))
	}

	// Scheme-specific credentials only populate the selected scheme
	switch config.Auth.Type {
	case models.AuthTypeBasic:
		if config.Auth.Basic == nil {
			config.Auth.Basic = &models.BasicAuthConfig{}
		}
		setFromEnv(&config.Auth.Basic.Username, "SERVICENOW_USERNAME")
		setFromEnv(&config.Auth.Basic.Password, "SERVICENOW_PASSWORD")
	case models.AuthTypeOAuth:
		if config.Auth.OAuth == nil {
			config.Auth.OAuth = &models.OAuthConfig{}
		}
		setFromEnv(&config.Auth.OAuth.ClientID, "SERVICENOW_CLIENT_ID")
		setFromEnv(&config.Auth.OAuth.ClientSecret, "SERVICENOW_CLIENT_SECRET")
		setFromEnv(&config.Auth.OAuth.Username, "SERVICENOW_USERNAME")
		setFromEnv(&config.Auth.OAuth.Password, "SERVICENOW_PASSWORD")
		setFromEnv(&config.Auth.OAuth.TokenURL, "SERVICENOW_TOKEN_URL")
	case models.AuthTypeAPIKey:
		if config.Auth.APIKey == nil {
			config.Auth.APIKey = &models.APIKeyConfig{}
		}
		setFromEnv(&config.Auth.APIKey.Key, "SERVICENOW_API_KEY")
		setFromEnv(&config.Auth.APIKey.Header, "SERVICENOW_API_KEY_HEADER")
	}

	if v := os.Getenv("SNOWBRIDGE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

func setFromEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
