package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"

	"github.com/ternarybob/snowbridge/internal/models"
)

// Manager produces per-request authentication headers for the configured
// credential scheme. Basic and API key headers are computed fresh on every
// call; OAuth bearer tokens are cached in memory and refreshed under a single
// lock, so concurrent callers wait for one in-flight token request instead of
// issuing duplicates.
type Manager struct {
	config     *models.AuthConfig
	httpClient *http.Client
	logger     arbor.ILogger

	mu    sync.Mutex
	token *oauth2.Token
}

// NewManager validates the credential configuration and returns a manager.
// The timeout applies to OAuth token acquisition.
func NewManager(config *models.AuthConfig, timeout time.Duration, logger arbor.ILogger) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Headers returns the authentication headers for one outbound request
func (m *Manager) Headers(ctx context.Context) (map[string]string, error) {
	switch m.config.Type {
	case models.AuthTypeBasic:
		creds := m.config.Basic.Username + ":" + m.config.Basic.Password
		encoded := base64.StdEncoding.EncodeToString([]byte(creds))
		return map[string]string{"Authorization": "Basic " + encoded}, nil

	case models.AuthTypeAPIKey:
		return map[string]string{m.config.APIKey.HeaderName(): m.config.APIKey.Key}, nil

	case models.AuthTypeOAuth:
		token, err := m.bearerToken(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]string{"Authorization": "Bearer " + token}, nil

	default:
		return nil, &models.AuthConfigurationError{Scheme: string(m.config.Type), Reason: "unsupported auth type"}
	}
}

// bearerToken returns the cached OAuth token, requesting a new one via the
// resource-owner password grant when the cache is empty or expired. A failed
// acquisition caches nothing.
func (m *Manager) bearerToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token.Valid() {
		return m.token.AccessToken, nil
	}

	cfg := m.config.OAuth
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	token, err := conf.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
	if err != nil {
		m.logger.Error().Err(err).Str("token_url", cfg.TokenURL).Msg("OAuth token acquisition failed")
		return "", &models.AuthUpstreamError{Err: err}
	}

	m.token = token
	m.logger.Debug().Str("expiry", token.Expiry.Format(time.RFC3339)).Msg("OAuth token refreshed")
	return token.AccessToken, nil
}
