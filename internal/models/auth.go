package models

import (
	"github.com/go-playground/validator/v10"
)

// AuthType selects the credential scheme used against the ServiceNow instance
type AuthType string

const (
	AuthTypeBasic  AuthType = "basic"
	AuthTypeOAuth  AuthType = "oauth"
	AuthTypeAPIKey AuthType = "api_key"
)

// DefaultAPIKeyHeader is used when an API key config leaves the header unset
const DefaultAPIKeyHeader = "X-ServiceNow-API-Key"

// BasicAuthConfig holds credentials for HTTP basic authentication
type BasicAuthConfig struct {
	Username string `toml:"username" json:"username" validate:"required"`
	Password string `toml:"password" json:"password" validate:"required"`
}

// OAuthConfig holds credentials for the resource-owner password grant
type OAuthConfig struct {
	ClientID     string `toml:"client_id" json:"client_id" validate:"required"`
	ClientSecret string `toml:"client_secret" json:"client_secret" validate:"required"`
	Username     string `toml:"username" json:"username" validate:"required"`
	Password     string `toml:"password" json:"password" validate:"required"`
	TokenURL     string `toml:"token_url" json:"token_url" validate:"required,url"`
}

// APIKeyConfig holds a static API key sent as a request header
type APIKeyConfig struct {
	Key    string `toml:"key" json:"key" validate:"required"`
	Header string `toml:"header" json:"header"`
}

// HeaderName returns the configured header name, or the platform default
func (c *APIKeyConfig) HeaderName() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultAPIKeyHeader
}

// AuthConfig selects exactly one credential scheme. Only the selected
// scheme's fields are consulted; an unsupported type is a configuration
// error, never a runtime fallback.
type AuthConfig struct {
	Type   AuthType         `toml:"type" json:"type"`
	Basic  *BasicAuthConfig `toml:"basic" json:"basic,omitempty"`
	OAuth  *OAuthConfig     `toml:"oauth" json:"oauth,omitempty"`
	APIKey *APIKeyConfig    `toml:"api_key" json:"api_key,omitempty"`
}

var validate = validator.New()

// Validate checks that the selected scheme is supported and fully populated
func (c *AuthConfig) Validate() error {
	switch c.Type {
	case AuthTypeBasic:
		if c.Basic == nil {
			return &AuthConfigurationError{Scheme: string(c.Type), Reason: "basic credentials missing"}
		}
		if err := validate.Struct(c.Basic); err != nil {
			return &AuthConfigurationError{Scheme: string(c.Type), Reason: err.Error()}
		}
	case AuthTypeOAuth:
		if c.OAuth == nil {
			return &AuthConfigurationError{Scheme: string(c.Type), Reason: "oauth credentials missing"}
		}
		if err := validate.Struct(c.OAuth); err != nil {
			return &AuthConfigurationError{Scheme: string(c.Type), Reason: err.Error()}
		}
	case AuthTypeAPIKey:
		if c.APIKey == nil {
			return &AuthConfigurationError{Scheme: string(c.Type), Reason: "api key missing"}
		}
		if err := validate.Struct(c.APIKey); err != nil {
			return &AuthConfigurationError{Scheme: string(c.Type), Reason: err.Error()}
		}
	default:
		return &AuthConfigurationError{Scheme: string(c.Type), Reason: "unsupported auth type"}
	}
	return nil
}
