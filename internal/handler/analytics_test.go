package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeAnalytics struct {
	payload json.RawMessage
	err     error
}

func (f *fakeAnalytics) Dashboard(context.Context) (json.RawMessage, error) {
	return f.payload, f.err
}

func TestAnalyticsPassThrough(t *testing.T) {
	payload := json.RawMessage(`{"total_users":42,"total_volume":1234.5}`)
	h := NewAnalyticsHandler(testLogger(), &fakeAnalytics{payload: payload})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/admin/analytics", nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data["total_users"] != float64(42) {
		t.Errorf("total_users = %v, want 42", body.Data["total_users"])
	}
}

func TestAnalyticsErrorEnvelope(t *testing.T) {
	h := NewAnalyticsHandler(testLogger(), &fakeAnalytics{err: fmt.Errorf("get_dashboard_analytics: timeout")})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/admin/analytics", nil)
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the envelope")
	}
}
