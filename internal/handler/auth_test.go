package handler_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/handler"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// --- Mocks ---

type mockProvider struct {
	admins    map[string]string // email -> password
	employees map[string]string // employee id -> password
	err       error
}

func (m *mockProvider) Authenticate(_ context.Context, c auth.Credentials) (*auth.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c.Email != "" {
		if pw, ok := m.admins[c.Email]; ok && pw == c.Password {
			s := adminSession
			return &s, nil
		}
		return nil, auth.ErrInvalidCredentials
	}
	if pw, ok := m.employees[c.EmployeeID]; ok && pw == c.Password {
		s := employeeSession
		return &s, nil
	}
	return nil, auth.ErrInvalidCredentials
}

type mockSessions struct {
	dropped []string
}

func (m *mockSessions) Drop(userID string) { m.dropped = append(m.dropped, userID) }

func newProvider() *mockProvider {
	return &mockProvider{
		admins:    map[string]string{"admin@cafeflow.com": "admin123"},
		employees: map[string]string{"EMP001": "emp001"},
	}
}

type authFixture struct {
	router   chi.Router
	revoker  *auth.MemoryRevoker
	sessions *mockSessions
}

func newAuthFixture(provider auth.IdentityProvider) authFixture {
	f := authFixture{revoker: auth.NewMemoryRevoker(), sessions: &mockSessions{}}
	h := handler.NewAuthHandler(provider, f.revoker, f.sessions, newMetrics(), testSecret, time.Hour)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret, f.revoker, nil))
		h.RegisterSessionRoutes(r)
	})
	f.router = r
	return f
}

// --- Login tests ---

func TestAdminLogin_ValidCredentials(t *testing.T) {
	f := newAuthFixture(newProvider())

	rr := postJSON(t, f.router, "/auth/admin/login", map[string]string{
		"email":    "admin@cafeflow.com",
		"password": "admin123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	token, _ := resp["access_token"].(string)
	if token == "" {
		t.Fatal("expected non-empty access_token")
	}
	claims, err := auth.ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Role != "ADMIN" || claims.Subject != "ADM001" {
		t.Errorf("unexpected claims %+v", claims)
	}

	user, ok := resp["user"].(map[string]interface{})
	if !ok {
		t.Fatal("expected user object in response")
	}
	if user["email"] != "admin@cafeflow.com" {
		t.Errorf("user email: got %v", user["email"])
	}
	perms, _ := resp["permissions"].([]interface{})
	if len(perms) != 2 {
		t.Errorf("admin permissions: got %v", perms)
	}
}

func TestEmployeeLogin_ValidCredentials(t *testing.T) {
	f := newAuthFixture(newProvider())

	rr := postJSON(t, f.router, "/auth/employee/login", map[string]string{
		"employeeId": "EMP001",
		"password":   "emp001",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	user := decodeResponse(t, rr)["user"].(map[string]interface{})
	if user["role"] != "EMPLOYEE" || user["employee_id"] != "EMP001" {
		t.Errorf("unexpected user %v", user)
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *mockProvider
		path     string
		body     map[string]string
		want     int
	}{
		{"admin wrong password", newProvider(), "/auth/admin/login", map[string]string{"email": "admin@cafeflow.com", "password": "nope"}, http.StatusUnauthorized},
		{"admin missing password", newProvider(), "/auth/admin/login", map[string]string{"email": "admin@cafeflow.com"}, http.StatusBadRequest},
		{"employee unknown id", newProvider(), "/auth/employee/login", map[string]string{"employeeId": "EMP999", "password": "x"}, http.StatusUnauthorized},
		{"employee missing id", newProvider(), "/auth/employee/login", map[string]string{"password": "x"}, http.StatusBadRequest},
		{"backend down", &mockProvider{err: errors.New("dial tcp: refused")}, "/auth/employee/login", map[string]string{"employeeId": "EMP001", "password": "emp001"}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(tt.provider)
			rr := postJSON(t, f.router, tt.path, tt.body)
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d; body: %s", rr.Code, tt.want, rr.Body.String())
			}
			if tt.want == http.StatusBadGateway && strings.Contains(rr.Body.String(), "refused") {
				t.Error("internal error leaked to client")
			}
		})
	}
}

func TestLogin_InvalidBody(t *testing.T) {
	f := newAuthFixture(newProvider())
	rr := doRequest(t, f.router, "POST", "/auth/admin/login", "", "not an object")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Session tests ---

func TestMe(t *testing.T) {
	f := newAuthFixture(newProvider())

	rr := doRequest(t, f.router, "GET", "/auth/me", tokenFor(t, employeeSession), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeResponse(t, rr)
	if resp["user"].(map[string]interface{})["name"] != "John Doe" {
		t.Errorf("unexpected user %v", resp["user"])
	}
	perms := resp["permissions"].([]interface{})
	if len(perms) != 3 {
		t.Errorf("employee permissions: got %v", perms)
	}
}

func TestLogout_RevokesTokenAndDropsCart(t *testing.T) {
	f := newAuthFixture(newProvider())
	token := tokenFor(t, employeeSession)

	rr := doRequest(t, f.router, "POST", "/auth/logout", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if len(f.sessions.dropped) != 1 || f.sessions.dropped[0] != "EMP001" {
		t.Errorf("expected composer for EMP001 dropped, got %v", f.sessions.dropped)
	}

	rr = doRequest(t, f.router, "GET", "/auth/me", token, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("revoked token still accepted: status %d", rr.Code)
	}
}
