package servicenow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/snowbridge/internal/models"
)

// ListParams are the caller-supplied filters for a list operation. Defaults
// are the caller's responsibility; the operations only validate.
type ListParams struct {
	Limit      int
	Offset     int
	State      string
	AssignedTo string
	Category   string
	Query      string // substring match over the kind's text fields
}

// Operations exposes the read tools shared by every record kind. Upstream
// request failures are converted to failure envelopes at this boundary; only
// validation and configuration defects surface as errors.
type Operations struct {
	client *Client
	logger arbor.ILogger
}

// NewOperations creates the tool operations over a Table API client
func NewOperations(client *Client, logger arbor.ILogger) *Operations {
	return &Operations{client: client, logger: logger}
}

// List returns one page of records matching the equality filters and
// optional free-text query, normalized to the kind's summary view.
func (o *Operations) List(ctx context.Context, kind RecordKind, params ListParams) (*models.Envelope, error) {
	if err := validatePage(params.Limit, params.Offset); err != nil {
		return nil, err
	}

	filters := []Filter{
		{Field: kind.StateField, Value: params.State},
		{Field: kind.AssignedField, Value: params.AssignedTo},
		{Field: kind.CategoryField, Value: params.Category},
	}
	encoded := equalityQuery(filters, params.Query, kind.TextFields)

	rows, err := o.client.GetRecords(ctx, kind.Table, pageParams(encoded, params.Limit, params.Offset, nil))
	if err != nil {
		o.logger.Error().Err(err).Str("kind", kind.Name).Msg("List request failed")
		return &models.Envelope{
			Success: false,
			Message: fmt.Sprintf("Failed to list %s: %v", kind.Plural, err),
		}, nil
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeRecord(row, kind.Summary))
	}

	return &models.Envelope{
		Success: true,
		Message: fmt.Sprintf("Found %d %s", len(records), kind.Plural),
		Records: records,
	}, nil
}

// GetByNumber fetches a single record by its number, normalized to the
// kind's detail view. A missing record is an expected outcome and is
// reported through the envelope, not as an error.
func (o *Operations) GetByNumber(ctx context.Context, kind RecordKind, number string) (*models.Envelope, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, &models.ValidationError{Field: "number", Reason: "must not be blank"}
	}

	encoded := equalityQuery([]Filter{{Field: "number", Value: number}}, "", nil)
	rows, err := o.client.GetRecords(ctx, kind.Table, pageParams(encoded, 1, 0, nil))
	if err != nil {
		o.logger.Error().Err(err).Str("kind", kind.Name).Str("number", number).Msg("Get request failed")
		return &models.Envelope{
			Success: false,
			Message: fmt.Sprintf("Failed to fetch %s: %v", strings.ToLower(kind.Label), err),
		}, nil
	}

	if len(rows) == 0 {
		return &models.Envelope{
			Success: false,
			Message: fmt.Sprintf("%s not found: %s", kind.Label, number),
		}, nil
	}

	return &models.Envelope{
		Success: true,
		Message: fmt.Sprintf("%s %s found", kind.Label, number),
		Record:  normalizeRecord(rows[0], kind.Detail),
	}, nil
}

// Search matches any keyword against any of the kind's text fields and
// returns the compact field subset to bound payload size. Results keep the
// order the upstream API returned them in.
func (o *Operations) Search(ctx context.Context, kind RecordKind, keywords []string, limit, offset int) (*models.Envelope, error) {
	if err := validatePage(limit, offset); err != nil {
		return nil, err
	}

	encoded := keywordQuery(keywords, kind.TextFields)
	if encoded == "" {
		// An all-blank keyword list must not reach the API
		return &models.Envelope{
			Success: true,
			Message: "No valid keywords provided",
			Records: []map[string]string{},
		}, nil
	}

	rows, err := o.client.GetRecords(ctx, kind.Table, pageParams(encoded, limit, offset, kind.Compact))
	if err != nil {
		o.logger.Error().Err(err).Str("kind", kind.Name).Msg("Search request failed")
		return &models.Envelope{
			Success: false,
			Message: fmt.Sprintf("Failed to search %s: %v", kind.Plural, err),
		}, nil
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeRecord(row, kind.Compact))
	}

	return &models.Envelope{
		Success: true,
		Message: fmt.Sprintf("Found %d %s matching keywords", len(records), kind.Plural),
		Records: records,
	}, nil
}
