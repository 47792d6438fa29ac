package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/metrics"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	portalAdmin    = "admin"
	portalEmployee = "employee"
)

// SessionCloser forgets per-user state when a session ends.
// Satisfied by *order.Registry.
type SessionCloser interface {
	Drop(userID string)
}

// AuthHandler handles login, logout and the current-session endpoint.
type AuthHandler struct {
	provider  auth.IdentityProvider
	revoker   auth.Revoker
	sessions  SessionCloser
	metrics   *metrics.Metrics
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider auth.IdentityProvider, revoker auth.Revoker, sessions SessionCloser, m *metrics.Metrics, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		provider:  provider,
		revoker:   revoker,
		sessions:  sessions,
		metrics:   m,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterRoutes registers the public login endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/admin/login", h.AdminLogin)
	r.Post("/auth/employee/login", h.EmployeeLogin)
}

// RegisterSessionRoutes registers endpoints that need an authenticated caller.
func (h *AuthHandler) RegisterSessionRoutes(r chi.Router) {
	r.Get("/auth/me", h.Me)
	r.Post("/auth/logout", h.Logout)
}

// --- Request / Response types ---

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type employeeLoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

type sessionResponse struct {
	User        auth.Session      `json:"user"`
	Permissions []auth.Permission `json:"permissions"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	sessionResponse
}

func newSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{User: s, Permissions: auth.Permissions(s.Role)}
}

// --- Handlers ---

// AdminLogin handles email + password authentication for the admin portal.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}
	h.login(w, r, portalAdmin, auth.Credentials{Email: req.Email, Password: req.Password})
}

// EmployeeLogin handles employee ID + password authentication for the staff portal.
func (h *AuthHandler) EmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var req employeeLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.EmployeeID == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "employeeId and password are required"})
		return
	}
	h.login(w, r, portalEmployee, auth.Credentials{EmployeeID: req.EmployeeID, Password: req.Password})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, portal string, creds auth.Credentials) {
	session, err := h.provider.Authenticate(r.Context(), creds)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.metrics.Login(portal, metrics.LoginInvalid)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		case errors.Is(err, auth.ErrMissingCredentials):
			h.metrics.Login(portal, metrics.LoginInvalid)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.metrics.Login(portal, metrics.LoginError)
			slog.Error("login failed", "portal", portal, "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "authentication service unavailable"})
		}
		return
	}

	expiresAt := time.Now().Add(h.tokenTTL)
	token, err := auth.GenerateToken(h.jwtSecret, *session, h.tokenTTL)
	if err != nil {
		h.metrics.Login(portal, metrics.LoginError)
		slog.Error("login: generate token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.metrics.Login(portal, metrics.LoginSuccess)
	slog.Info("signed in", "portal", portal, "user_id", session.UserID, "role", session.Role)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:     token,
		ExpiresAt:       expiresAt,
		sessionResponse: newSessionResponse(*session),
	})
}

// Me returns the caller's session and what it may do.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

// Logout revokes the access token and discards the caller's cart.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	expiresAt := time.Now().Add(h.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.revoker.Revoke(r.Context(), claims.ID, expiresAt); err != nil {
		slog.Error("logout: revoke token", "user_id", claims.Subject, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.sessions.Drop(claims.Subject)

	slog.Info("signed out", "user_id", claims.Subject)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// detached keeps a request's values but not its cancellation, bounded by timeout.
func detached(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), timeout)
}
