package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pingpay/dashboard/internal/model"
	"github.com/pingpay/dashboard/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeUserStore struct {
	lastList   store.ListParams
	listUsers  []model.User
	listTotal  int
	listErr    error
	lastAction string
	lastIDs    []string
	actionRows []model.User
	actionErr  error
}

func (f *fakeUserStore) List(_ context.Context, p store.ListParams) ([]model.User, int, error) {
	f.lastList = p
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listUsers, f.listTotal, nil
}

func (f *fakeUserStore) Action(_ context.Context, action string, ids []string) ([]model.User, error) {
	f.lastAction = action
	f.lastIDs = ids
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	return f.actionRows, nil
}

func sampleUser(id string) model.User {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.User{
		ID:          id,
		FullName:    "John Doe",
		Email:       "john@example.com",
		PhoneNumber: "+22890000000",
		KYCLevel:    model.KYCFull,
		Status:      model.StatusActive,
		CreatedAt:   created,
		Country:     "TG",
	}
}

func TestUsersListForwardsAllFiveParams(t *testing.T) {
	fake := &fakeUserStore{listUsers: []model.User{sampleUser("u1")}, listTotal: 1}
	h := NewUsersHandler(testLogger(), fake)

	req := httptest.NewRequest(http.MethodGet,
		"/api/dashboard/admin/users?filter_kyc=full&filter_status=active&page_limit=10&page_offset=0&search_term=john", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	want := store.ListParams{KYC: "full", Status: "active", Limit: 10, Offset: 0, Search: "john"}
	if fake.lastList != want {
		t.Errorf("forwarded params = %+v, want %+v", fake.lastList, want)
	}
}

func TestUsersListDefaults(t *testing.T) {
	fake := &fakeUserStore{}
	h := NewUsersHandler(testLogger(), fake)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/admin/users", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	want := store.ListParams{KYC: "", Status: "", Limit: 20, Offset: 0, Search: ""}
	if fake.lastList != want {
		t.Errorf("default params = %+v, want %+v", fake.lastList, want)
	}
}

func TestUsersListReportsServerTotal(t *testing.T) {
	// The total must be the database-reported filtered count, not the
	// page length.
	fake := &fakeUserStore{listUsers: []model.User{sampleUser("u1"), sampleUser("u2")}, listTotal: 57}
	h := NewUsersHandler(testLogger(), fake)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/admin/users", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	var body struct {
		Data  []model.User `json:"data"`
		Count int          `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 57 {
		t.Errorf("count = %d, want 57", body.Count)
	}
	if len(body.Data) != 2 {
		t.Errorf("data length = %d, want 2", len(body.Data))
	}
}

func TestUsersListErrorEnvelope(t *testing.T) {
	fake := &fakeUserStore{listErr: fmt.Errorf("get_admin_users: connection refused")}
	h := NewUsersHandler(testLogger(), fake)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/admin/users", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

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

func TestUsersActionsForwardsBody(t *testing.T) {
	fake := &fakeUserStore{actionRows: []model.User{sampleUser("u1")}}
	h := NewUsersHandler(testLogger(), fake)

	body := `{"action":"activate","user_ids":["u1","u2"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/admin/users/actions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Actions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if fake.lastAction != "activate" {
		t.Errorf("action = %q, want activate", fake.lastAction)
	}
	if len(fake.lastIDs) != 2 || fake.lastIDs[0] != "u1" || fake.lastIDs[1] != "u2" {
		t.Errorf("user_ids = %v, want [u1 u2]", fake.lastIDs)
	}
}

func TestUsersActionsRemoteFailure(t *testing.T) {
	fake := &fakeUserStore{actionErr: fmt.Errorf("admin_user_action: Invalid action")}
	h := NewUsersHandler(testLogger(), fake)

	body := `{"action":"promote","user_ids":["u1"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/admin/users/actions", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Actions(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid action") {
		t.Errorf("expected remote message in body, got %s", rr.Body.String())
	}
}

func TestUsersActionsRejectsMalformedBody(t *testing.T) {
	fake := &fakeUserStore{}
	h := NewUsersHandler(testLogger(), fake)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/admin/users/actions", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.Actions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if fake.lastAction != "" {
		t.Error("store should not be called for malformed bodies")
	}
}
