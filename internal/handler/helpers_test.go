package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/metrics"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/go-chi/chi/v5"
)

const testSecret = "test-secret"

var (
	adminSession    = auth.Session{UserID: "ADM001", Name: "Admin User", Email: "admin@cafeflow.com", Role: enum.RoleAdmin}
	employeeSession = auth.Session{UserID: "EMP001", Name: "John Doe", EmployeeID: "EMP001", Role: enum.RoleEmployee}
)

func newMetrics() *metrics.Metrics {
	return metrics.New(func() int { return 0 })
}

func tokenFor(t *testing.T, s auth.Session) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, s, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

// authedRouter mounts routes behind Authenticate, the way the real router does.
func authedRouter(register func(r chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret, auth.NewMemoryRevoker(), nil))
		register(r)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("marshal request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, router, "POST", path, "", body)
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}
