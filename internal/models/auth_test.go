package models

import (
	"errors"
	"testing"
)

func TestAuthConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  AuthConfig
		wantErr bool
	}{
		{
			name: "valid basic",
			config: AuthConfig{
				Type:  AuthTypeBasic,
				Basic: &BasicAuthConfig{Username: "admin", Password: "secret"},
			},
		},
		{
			name: "valid oauth",
			config: AuthConfig{
				Type: AuthTypeOAuth,
				OAuth: &OAuthConfig{
					ClientID:     "id",
					ClientSecret: "secret",
					Username:     "admin",
					Password:     "secret",
					TokenURL:     "https://dev12345.service-now.com/oauth_token.do",
				},
			},
		},
		{
			name: "valid api key",
			config: AuthConfig{
				Type:   AuthTypeAPIKey,
				APIKey: &APIKeyConfig{Key: "key-123"},
			},
		},
		{
			name:    "basic missing struct",
			config:  AuthConfig{Type: AuthTypeBasic},
			wantErr: true,
		},
		{
			name: "basic empty username",
			config: AuthConfig{
				Type:  AuthTypeBasic,
				Basic: &BasicAuthConfig{Password: "secret"},
			},
			wantErr: true,
		},
		{
			name: "oauth missing token url",
			config: AuthConfig{
				Type: AuthTypeOAuth,
				OAuth: &OAuthConfig{
					ClientID: "id", ClientSecret: "secret", Username: "admin", Password: "secret",
				},
			},
			wantErr: true,
		},
		{
			name:    "unsupported type is a configuration error",
			config:  AuthConfig{Type: AuthType("saml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var configErr *AuthConfigurationError
				if !errors.As(err, &configErr) {
					t.Errorf("error type = %T, want *AuthConfigurationError", err)
				}
			}
		})
	}
}

func TestAPIKeyHeaderName(t *testing.T) {
	withDefault := &APIKeyConfig{Key: "k"}
	if got := withDefault.HeaderName(); got != DefaultAPIKeyHeader {
		t.Errorf("HeaderName() = %q, want %q", got, DefaultAPIKeyHeader)
	}

	custom := &APIKeyConfig{Key: "k", Header: "X-Custom"}
	if got := custom.HeaderName(); got != "X-Custom" {
		t.Errorf("HeaderName() = %q, want X-Custom", got)
	}
}
