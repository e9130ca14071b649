package servicenow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/snowbridge/internal/auth"
	"github.com/ternarybob/snowbridge/internal/common"
	"github.com/ternarybob/snowbridge/internal/models"
)

// Client issues authenticated read requests against the ServiceNow Table API.
// Each call performs at most one GET; there is no retry policy.
type Client struct {
	apiURL     string
	httpClient *http.Client
	auth       *auth.Manager
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// NewClient creates a Table API client for the configured instance
func NewClient(cfg common.ServiceNowConfig, authManager *auth.Manager, logger arbor.ILogger) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		apiURL:     cfg.APIURL(),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		auth:       authManager,
		limiter:    limiter,
		logger:     logger,
	}
}

// GetRecords performs one GET against {api}/table/{table} and returns the
// decoded result rows in upstream order.
func (c *Client) GetRecords(ctx context.Context, table string, params map[string]string) ([]map[string]interface{}, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &models.UpstreamRequestError{Table: table, Err: err}
		}
	}

	headers, err := c.auth.Headers(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/table/%s", c.apiURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &models.UpstreamRequestError{Table: table, Err: err}
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	req.URL.RawQuery = query.Encode()

	// The correlation id is sent upstream so instance-side logs can be
	// matched against ours
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "snowbridge/"+common.GetVersion())
	req.Header.Set("X-Request-ID", requestID)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("request_id", requestID).
			Str("table", table).
			Msg("Table API request failed")
		return nil, &models.UpstreamRequestError{Table: table, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.UpstreamRequestError{Table: table, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Str("request_id", requestID).
			Str("table", table).
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Table API returned non-2xx status")
		return nil, &models.UpstreamRequestError{Table: table, Status: resp.StatusCode}
	}

	var payload struct {
		Result []map[string]interface{} `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error().Err(err).
			Str("request_id", requestID).
			Str("table", table).
			Msg("Failed to decode Table API response")
		return nil, &models.UpstreamRequestError{Table: table, Err: err}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("table", table).
		Int("rows", len(payload.Result)).
		Str("elapsed", time.Since(start).String()).
		Msg("Table API request completed")

	return payload.Result, nil
}
