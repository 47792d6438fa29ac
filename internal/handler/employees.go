package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/employee"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"github.com/go-chi/chi/v5"
)

// EmployeeService defines the roster operations needed by the admin handlers.
// Satisfied by *employee.Service; narrow interface for testability.
type EmployeeService interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Get(ctx context.Context, id string) (employee.Employee, error)
	Create(ctx context.Context, req employee.CreateRequest) (employee.Employee, error)
	Update(ctx context.Context, id string, req employee.UpdateRequest) (employee.Employee, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (employee.Stats, error)
}

// EmployeeHandler handles the admin's employee management endpoints.
type EmployeeHandler struct {
	svc      EmployeeService
	sessions SessionCloser
}

// NewEmployeeHandler creates a new EmployeeHandler. Deleting or deactivating
// an employee drops their per-user state from sessions.
func NewEmployeeHandler(svc EmployeeService, sessions SessionCloser) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, sessions: sessions}
}

// RegisterRoutes registers roster endpoints.
// Expected to be mounted under /admin.
func (h *EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.Stats)
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// --- Request / Response types ---

type createEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type updateEmployeeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Password *string `json:"password"`
}

type employeeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinDate string `json:"join_date"`
	Status   string `json:"status"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	return employeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Role:     e.Role,
		JoinDate: e.JoinDate.Format("2006-01-02"),
		Status:   e.Status,
	}
}

// --- Handlers ---

// List returns the whole roster.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, "list employees", err)
		return
	}

	resp := make([]employeeResponse, len(list))
	for i, e := range list {
		resp[i] = toEmployeeResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one employee.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(e))
}

// Create adds an employee with the next free ID.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	e, err := h.svc.Create(r.Context(), employee.CreateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, "create employee", err)
		return
	}

	slog.Info("employee created", "employee_id", e.ID)
	writeJSON(w, http.StatusCreated, toEmployeeResponse(e))
}

// Update changes the fields present in the body.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	e, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), employee.UpdateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Status:   req.Status,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, "update employee", err)
		return
	}
	if e.Status != enum.EmployeeStatusActive {
		h.sessions.Drop(e.ID)
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(e))
}

// Delete removes an employee from the roster.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, "delete employee", err)
		return
	}
	h.sessions.Drop(id)

	slog.Info("employee deleted", "employee_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats returns total and active headcounts.
func (h *EmployeeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeError(w, "employee stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *EmployeeHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, employee.ErrDuplicateEmail), errors.Is(err, employee.ErrDuplicateID):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, employee.ErrNameRequired),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrRoleRequired),
		errors.Is(err, employee.ErrWeakPassword),
		errors.Is(err, employee.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error(op, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
