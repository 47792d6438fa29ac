package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type portalLink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LoginPath   string `json:"login_path"`
}

type landingResponse struct {
	Name    string       `json:"name"`
	Tagline string       `json:"tagline"`
	Portals []portalLink `json:"portals"`
}

var landing = landingResponse{
	Name:    "CafeFlow",
	Tagline: "Streamline your cafe operations with our comprehensive management system",
	Portals: []portalLink{
		{Name: "Administrator", Description: "Manage employees, oversee operations, and access detailed analytics", LoginPath: "/auth/admin/login"},
		{Name: "Employee", Description: "Access your daily tasks, manage orders, and track your performance", LoginPath: "/auth/employee/login"},
	},
}

// RegisterPublicRoutes registers the landing and health endpoints.
func RegisterPublicRoutes(r chi.Router, version string) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, landing)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version})
	})
}
