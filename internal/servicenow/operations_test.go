package servicenow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/snowbridge/internal/auth"
	"github.com/ternarybob/snowbridge/internal/common"
	"github.com/ternarybob/snowbridge/internal/models"
)

// newTestOperations wires operations against a fake Table API endpoint
func newTestOperations(t *testing.T, handler http.HandlerFunc) *Operations {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	logger := arbor.NewLogger()
	authConfig := &models.AuthConfig{
		Type:  models.AuthTypeBasic,
		Basic: &models.BasicAuthConfig{Username: "test", Password: "test"},
	}
	authManager, err := auth.NewManager(authConfig, time.Second, logger)
	require.NoError(t, err)

	client := NewClient(common.ServiceNowConfig{InstanceURL: ts.URL, TimeoutSeconds: 5}, authManager, logger)
	return NewOperations(client, logger)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func problemRow() map[string]interface{} {
	return map[string]interface{}{
		"sys_id":            "abc123",
		"number":            "PRB0010001",
		"short_description": "Email outage",
		"description":       "Users cannot send email",
		"state":             "1",
		"priority":          "1 - Critical",
		"assigned_to":       map[string]interface{}{"display_value": "Jane Admin"},
		"category":          "Software",
		"subcategory":       "Email",
		"sys_created_on":    "2025-06-25 10:00:00",
		"sys_updated_on":    "2025-06-26 09:00:00",
	}
}

func TestList_NormalizesNestedAssignedTo(t *testing.T) {
	var captured url.Values
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		assert.Equal(t, "/api/now/table/problem", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": [` + mustJSON(t, problemRow()) + `]}`))
	})

	envelope, err := ops.List(context.Background(), Problem, ListParams{Limit: 5, Query: "email"})
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Equal(t, "Found 1 problems", envelope.Message)
	require.Len(t, envelope.Records, 1)
	assert.Equal(t, "PRB0010001", envelope.Records[0]["number"])
	assert.Equal(t, "Jane Admin", envelope.Records[0]["assigned_to"])

	assert.Equal(t, "short_descriptionLIKEemail^ORdescriptionLIKEemail", captured.Get("sysparm_query"))
	assert.Equal(t, "5", captured.Get("sysparm_limit"))
	assert.Equal(t, "true", captured.Get("sysparm_display_value"))
	assert.Equal(t, "true", captured.Get("sysparm_exclude_reference_link"))
}

func TestList_EqualityFiltersPrecedeTextQuery(t *testing.T) {
	var captured url.Values
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Write([]byte(`{"result": []}`))
	})

	_, err := ops.List(context.Background(), Incident, ListParams{
		Limit: 10, State: "2", Category: "Hardware", Query: "printer",
	})
	require.NoError(t, err)

	want := "state=2^category=Hardware^short_descriptionLIKEprinter^ORdescriptionLIKEprinter"
	assert.Equal(t, want, captured.Get("sysparm_query"))
}

func TestList_LimitZeroRejectedBeforeRequest(t *testing.T) {
	var requests int32
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"result": []}`))
	})

	_, err := ops.List(context.Background(), Problem, ListParams{Limit: 0})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests), "no HTTP call expected")
}

func TestList_UpstreamFailureBecomesEnvelope(t *testing.T) {
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	envelope, err := ops.List(context.Background(), Problem, ListParams{Limit: 10})
	require.NoError(t, err)

	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "Failed to list problems")
	assert.Empty(t, envelope.Records)
}

func TestList_MalformedJSONBecomesEnvelope(t *testing.T) {
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	envelope, err := ops.List(context.Background(), Incident, ListParams{Limit: 10})
	require.NoError(t, err)

	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, "Failed to list incidents")
}

func TestGetByNumber_Found(t *testing.T) {
	var captured url.Values
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Write([]byte(`{"result": [` + mustJSON(t, problemRow()) + `]}`))
	})

	envelope, err := ops.GetByNumber(context.Background(), Problem, "PRB0010001")
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Equal(t, "Problem PRB0010001 found", envelope.Message)
	require.NotNil(t, envelope.Record)
	assert.Equal(t, "Users cannot send email", envelope.Record["description"])
	assert.Equal(t, "Jane Admin", envelope.Record["assigned_to"])

	assert.Equal(t, "number=PRB0010001", captured.Get("sysparm_query"))
	assert.Equal(t, "1", captured.Get("sysparm_limit"))
}

func TestGetByNumber_NotFound(t *testing.T) {
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": []}`))
	})

	envelope, err := ops.GetByNumber(context.Background(), Problem, "PRB0099999")
	require.NoError(t, err)

	assert.False(t, envelope.Success)
	assert.Equal(t, "Problem not found: PRB0099999", envelope.Message)
	assert.Nil(t, envelope.Record)
}

func TestGetByNumber_BlankNumberRejected(t *testing.T) {
	var requests int32
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	})

	_, err := ops.GetByNumber(context.Background(), Incident, "   ")

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
}

func TestSearch_BuildsKeywordORChain(t *testing.T) {
	var captured url.Values
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Write([]byte(`{"result": [
			{"sys_id": "a1", "number": "INC0010002", "short_description": "Windows update issue", "state": "2", "priority": "3 - Moderate", "sys_created_on": "2025-06-20 10:00:00", "sys_updated_on": "2025-06-21 09:00:00"},
			{"sys_id": "a2", "number": "INC0010005", "short_description": "Windows reboot loop", "state": "1", "priority": "2 - High", "sys_created_on": "2025-06-19 10:00:00", "sys_updated_on": "2025-06-20 09:00:00"}
		]}`))
	})

	envelope, err := ops.Search(context.Background(), Incident, []string{"Windows", "update"}, 3, 0)
	require.NoError(t, err)

	want := "short_descriptionLIKEWindows^ORdescriptionLIKEWindows" +
		"^ORshort_descriptionLIKEupdate^ORdescriptionLIKEupdate"
	assert.Equal(t, want, captured.Get("sysparm_query"))
	assert.NotEmpty(t, captured.Get("sysparm_fields"), "compact field subset expected")

	assert.True(t, envelope.Success)
	assert.Equal(t, "Found 2 incidents matching keywords", envelope.Message)
	// Upstream order preserved, no re-sorting
	require.Len(t, envelope.Records, 2)
	assert.Equal(t, "INC0010002", envelope.Records[0]["number"])
	assert.Equal(t, "INC0010005", envelope.Records[1]["number"])
}

func TestSearch_AllBlankKeywordsShortCircuits(t *testing.T) {
	var requests int32
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	})

	envelope, err := ops.Search(context.Background(), Knowledge, []string{"", "  "}, 10, 0)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Equal(t, "No valid keywords provided", envelope.Message)
	assert.Empty(t, envelope.Records)
	assert.Equal(t, int32(0), atomic.LoadInt32(&requests), "no HTTP call expected")
}

func TestSearch_KnowledgeUsesKindTextFields(t *testing.T) {
	var captured url.Values
	ops := newTestOperations(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		assert.Equal(t, "/api/now/table/kb_knowledge", r.URL.Path)
		w.Write([]byte(`{"result": []}`))
	})

	_, err := ops.Search(context.Background(), Knowledge, []string{"vpn"}, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, "short_descriptionLIKEvpn^ORtextLIKEvpn", captured.Get("sysparm_query"))
}
