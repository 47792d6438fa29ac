package handler_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/employee"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/handler"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func newEmployeeRouter(t *testing.T, svc handler.EmployeeService) chi.Router {
	t.Helper()
	return newEmployeeRouterWithSessions(t, svc, &mockSessions{})
}

func newEmployeeRouterWithSessions(t *testing.T, svc handler.EmployeeService, sessions *mockSessions) chi.Router {
	t.Helper()
	h := handler.NewEmployeeHandler(svc, sessions)
	return authedRouter(func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.ManageEmployees))
		r.Route("/admin", h.RegisterRoutes)
	})
}

func seededService(t *testing.T) *employee.Service {
	t.Helper()
	svc := employee.NewService(employee.NewMemoryStore())
	if _, err := svc.Seed(context.Background(), employee.DefaultSeeds()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestEmployees_List(t *testing.T) {
	r := newEmployeeRouter(t, seededService(t))

	rr := doRequest(t, r, "GET", "/admin/employees", tokenFor(t, adminSession), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{`"id":"EMP001"`, `"join_date":"2024-01-15"`, `"status":"ACTIVE"`} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %s in %s", want, body)
		}
	}
	if strings.Contains(body, "password") {
		t.Error("password data leaked in list response")
	}
}

func TestEmployees_EmployeeRoleForbidden(t *testing.T) {
	r := newEmployeeRouter(t, seededService(t))

	rr := doRequest(t, r, "GET", "/admin/employees", tokenFor(t, employeeSession), nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestEmployees_CreateUpdateDelete(t *testing.T) {
	r := newEmployeeRouter(t, seededService(t))
	token := tokenFor(t, adminSession)

	rr := doRequest(t, r, "POST", "/admin/employees", token, map[string]string{
		"name": "Maria Garcia", "email": "maria@cafeflow.com", "role": "Barista", "password": "secret1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	created := decodeResponse(t, rr)
	if created["id"] != "EMP003" {
		t.Errorf("id: got %v, want EMP003", created["id"])
	}

	rr = doRequest(t, r, "PUT", "/admin/employees/EMP003", token, map[string]string{"status": "INACTIVE"})
	if rr.Code != http.StatusOK {
		t.Fatalf("update status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	if decodeResponse(t, rr)["status"] != "INACTIVE" {
		t.Error("status not updated")
	}

	rr = doRequest(t, r, "GET", "/admin/stats", token, nil)
	stats := decodeResponse(t, rr)
	if stats["total"] != float64(3) || stats["active"] != float64(2) {
		t.Errorf("stats: got %v", stats)
	}

	rr = doRequest(t, r, "DELETE", "/admin/employees/EMP003", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status: got %d", rr.Code)
	}
	rr = doRequest(t, r, "GET", "/admin/employees/EMP003", token, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestEmployees_RemovalEndsOpenCart(t *testing.T) {
	sessions := &mockSessions{}
	r := newEmployeeRouterWithSessions(t, seededService(t), sessions)
	token := tokenFor(t, adminSession)

	rr := doRequest(t, r, "PUT", "/admin/employees/EMP001", token, map[string]string{"name": "John D."})
	if rr.Code != http.StatusOK {
		t.Fatalf("rename: got %d", rr.Code)
	}
	if len(sessions.dropped) != 0 {
		t.Fatalf("rename must keep the cart, dropped %v", sessions.dropped)
	}

	rr = doRequest(t, r, "PUT", "/admin/employees/EMP001", token, map[string]string{"status": "INACTIVE"})
	if rr.Code != http.StatusOK {
		t.Fatalf("deactivate: got %d", rr.Code)
	}
	rr = doRequest(t, r, "DELETE", "/admin/employees/EMP002", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rr.Code)
	}
	if len(sessions.dropped) != 2 || sessions.dropped[0] != "EMP001" || sessions.dropped[1] != "EMP002" {
		t.Errorf("dropped: got %v, want [EMP001 EMP002]", sessions.dropped)
	}

	rr = doRequest(t, r, "DELETE", "/admin/employees/EMP999", token, nil)
	if rr.Code != http.StatusNotFound || len(sessions.dropped) != 2 {
		t.Errorf("failed delete must not drop anything: %d %v", rr.Code, sessions.dropped)
	}
}

func TestEmployees_ErrorMapping(t *testing.T) {
	r := newEmployeeRouter(t, seededService(t))
	token := tokenFor(t, adminSession)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"duplicate email", "POST", "/admin/employees", map[string]string{"name": "X", "email": "john@cafeflow.com", "role": "Cook", "password": "secret1"}, http.StatusConflict},
		{"weak password", "POST", "/admin/employees", map[string]string{"name": "X", "email": "x@cafeflow.com", "role": "Cook", "password": "123"}, http.StatusBadRequest},
		{"bad email", "POST", "/admin/employees", map[string]string{"name": "X", "email": "nope", "role": "Cook", "password": "secret1"}, http.StatusBadRequest},
		{"invalid body", "POST", "/admin/employees", "nope", http.StatusBadRequest},
		{"unknown id", "PUT", "/admin/employees/EMP999", map[string]string{"name": "X"}, http.StatusNotFound},
		{"invalid status", "PUT", "/admin/employees/EMP001", map[string]string{"status": "ON_LEAVE"}, http.StatusBadRequest},
		{"delete unknown", "DELETE", "/admin/employees/EMP999", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, r, tt.method, tt.path, token, tt.body)
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d; body: %s", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

// failingService returns an unexpected error from every call.
type failingService struct{ handler.EmployeeService }

func (failingService) List(context.Context) ([]employee.Employee, error) {
	return nil, errors.New("connection reset")
}

func TestEmployees_InternalErrorIsHidden(t *testing.T) {
	r := newEmployeeRouter(t, failingService{})

	rr := doRequest(t, r, "GET", "/admin/employees", tokenFor(t, adminSession), nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "connection reset") {
		t.Error("internal error leaked to client")
	}
}
