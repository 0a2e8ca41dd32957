package truetabs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"data-extractor/core/fault"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", APIToken: "tok"}, nil)
}

func TestUpdateRecord_Success(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"code":200}`))
	})

	raw, err := c.UpdateRecord(context.Background(), "dst123", "rec1", map[string]any{"Status": "done", "Count": 3})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/datasheets/dst123/records", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.JSONEq(t, `{"success":true,"code":200}`, string(raw))

	assert.Equal(t, "name", gotBody["fieldKey"])
	records := gotBody["records"].([]any)
	require.Len(t, records, 1)
	rec := records[0].(map[string]any)
	assert.Equal(t, "rec1", rec["recordId"])
	assert.Equal(t, map[string]any{"Status": "done", "Count": float64(3)}, rec["fields"])
}

func TestUpdateRecord_NonSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"bad token"}`))
	})

	raw, err := c.UpdateRecord(context.Background(), "dst123", "rec1", map[string]any{"a": 1})
	assert.Nil(t, raw)

	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fault.KindSink, fe.Kind)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Equal(t, `{"success":false,"message":"bad token"}`, se.Body)
	assert.Contains(t, err.Error(), "API request failed with status: 403 Forbidden. Response body: ")
}

func TestUpdateRecord_InvalidJSONResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>ok</html>`))
	})

	_, err := c.UpdateRecord(context.Background(), "dst", "rec", nil)
	assert.True(t, fault.Is(err, fault.KindSink))
	assert.Contains(t, err.Error(), "<html>ok</html>")
}

func TestUpdateRecords_Validation(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	tests := []struct {
		name    string
		sheet   string
		records []RecordUpdate
	}{
		{"No Datasheet", "", []RecordUpdate{{RecordID: "r"}}},
		{"No Records", "dst", nil},
		{"No Record ID", "dst", []RecordUpdate{{Fields: map[string]any{"a": 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.UpdateRecords(context.Background(), tt.sheet, tt.records)
			assert.True(t, fault.Is(err, fault.KindConfiguration))
		})
	}
	assert.False(t, called)
}

func TestUpdateRecords_MissingToken(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)

	_, err := c.UpdateRecord(context.Background(), "dst", "rec", map[string]any{})
	assert.True(t, fault.Is(err, fault.KindConfiguration))
	assert.Contains(t, err.Error(), "api token")
}

func TestUpdateRecords_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL, APIToken: "tok", TimeoutSeconds: 1}, nil)

	_, err := c.UpdateRecord(context.Background(), "dst", "rec", map[string]any{})
	assert.True(t, fault.Is(err, fault.KindConnection))
}

func TestUpdateRecords_DoesNotModifyInput(t *testing.T) {
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	records := []RecordUpdate{{RecordID: "rec1"}}
	_, err := c.UpdateRecords(context.Background(), "dst123", records)

	require.NoError(t, err)
	assert.Nil(t, records[0].Fields)
	assert.Contains(t, gotBody, `"fields":{}`)
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{Code: 500, Body: "boom"}
	assert.Equal(t, "API request failed with status: 500 Internal Server Error. Response body: boom", err.Error())
}
